// README: Shared JSON/error-response helpers for the itinerary handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinerary/internal/planner"
	"itinerary/internal/validator"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps the planner/validator error surface onto HTTP status
// codes: bad input is a client error, a plan that cannot be completed is
// reported as 422, anything else is an internal error.
func writePlanError(c *gin.Context, err error) {
	var bad *validator.BadInput
	var failed *planner.PlanFailed
	switch {
	case asBadInput(err, &bad):
		writeError(c, http.StatusBadRequest, bad.Error())
	case asPlanFailed(err, &failed):
		writeError(c, http.StatusUnprocessableEntity, failed.Error())
	default:
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}

func asBadInput(err error, target **validator.BadInput) bool {
	if b, ok := err.(*validator.BadInput); ok {
		*target = b
		return true
	}
	return false
}

func asPlanFailed(err error, target **planner.PlanFailed) bool {
	if p, ok := err.(*planner.PlanFailed); ok {
		*target = p
		return true
	}
	return false
}
