package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"itinerary/internal/geocore"
)

// GeminiResolver resolves a free-text place name to a coordinate using a
// Gemini model forced into JSON mode, for names the Maps geocoder can't
// place (colloquial names, landmarks known only by local nickname).
type GeminiResolver struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiResolver initializes a Gemini client for place resolution.
func NewGeminiResolver(ctx context.Context, apiKey string) (*GeminiResolver, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("geocode: create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)

	return &GeminiResolver{client: client, model: model}, nil
}

// Close releases the underlying Gemini client.
func (g *GeminiResolver) Close() {
	g.client.Close()
}

type geminiCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (g *GeminiResolver) Resolve(ctx context.Context, name string) (geocore.Coordinate, error) {
	prompt := fmt.Sprintf(`You are a geocoding assistant for places in Taiwan.
Given a place name, respond with ONLY a JSON object {"lat": <float>, "lon": <float>}
giving its approximate decimal-degree coordinates. If the name is unrecognizable,
respond with {"lat": 0, "lon": 0}.

Place name: %s`, name)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return geocore.Coordinate{}, fmt.Errorf("geocode: gemini generation: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return geocore.Coordinate{}, fmt.Errorf("geocode: no response candidates for %q", name)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	var coord geminiCoordinate
	if err := json.Unmarshal([]byte(text.String()), &coord); err != nil {
		return geocore.Coordinate{}, fmt.Errorf("geocode: parse gemini response for %q: %w", name, err)
	}
	if coord.Lat == 0 && coord.Lon == 0 {
		return geocore.Coordinate{}, fmt.Errorf("geocode: unrecognized place name %q", name)
	}

	c := geocore.Coordinate{Lat: coord.Lat, Lon: coord.Lon}
	if err := geocore.Validate(c.Lat, c.Lon); err != nil {
		return geocore.Coordinate{}, fmt.Errorf("geocode: gemini returned invalid coordinate for %q: %w", name, err)
	}
	return c, nil
}
