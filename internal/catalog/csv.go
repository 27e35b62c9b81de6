package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvColumns is the required header order for the catalog ingest format.
// duration_min is appended to the base place_name/rating/lat/lon/label/
// period/hours columns since PlaceRecord requires a dwell time and the
// source format has no other column carrying it.
var csvColumns = []string{"place_name", "rating", "lat", "lon", "label", "period", "hours", "duration_min"}

// LoadCSV parses the tabular POI catalog format from r. The first row must
// be the header; column order is validated against csvColumns.
func LoadCSV(r io.Reader) ([]PlaceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var records []PlaceRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read row: %w", err)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvColumns) {
		return fmt.Errorf("catalog: expected %d columns, got %d", len(csvColumns), len(header))
	}
	for i, want := range csvColumns {
		if header[i] != want {
			return fmt.Errorf("catalog: column %d: expected %q, got %q", i, want, header[i])
		}
	}
	return nil
}

func parseRow(row []string) (PlaceRecord, error) {
	if len(row) != len(csvColumns) {
		return PlaceRecord{}, fmt.Errorf("catalog: row has %d fields, want %d", len(row), len(csvColumns))
	}

	name := row[0]
	rating, err := parseFloatOrDefault(row[1], 0)
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("catalog: %s: bad rating: %w", name, err)
	}
	lat, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("catalog: %s: bad lat: %w", name, err)
	}
	lon, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("catalog: %s: bad lon: %w", name, err)
	}
	label := Label(row[4])
	period := Period(row[5])

	hours, err := ParseHoursJSON([]byte(row[6]))
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("catalog: %s: %w", name, err)
	}

	duration, err := strconv.Atoi(row[7])
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("catalog: %s: bad duration_min: %w", name, err)
	}

	return PlaceRecord{
		Name:        name,
		Lat:         lat,
		Lon:         lon,
		Rating:      rating,
		DurationMin: duration,
		Label:       label,
		Period:      period,
		Hours:       hours,
	}, nil
}

func parseFloatOrDefault(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
