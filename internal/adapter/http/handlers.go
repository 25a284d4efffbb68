package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// actorStaffID reads the acting user off the request. The identity
// provider fronting this service sets the header; business logic never
// reaches into ambient session state.
func actorStaffID(c echo.Context) string {
	return c.Request().Header.Get("Ax-Staff-Id")
}

type actorHeader struct {
	StaffID string `validate:"required,staffid"`
}

// requireActor rejects mutating requests without a well-formed staff
// identity. It writes the 400 itself; callers stop on !ok.
func requireActor(c echo.Context) (string, bool) {
	a := actorHeader{StaffID: actorStaffID(c)}
	if err := c.Validate(&a); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Staff-Id", Details: ToFieldErrors(err)})
		return "", false
	}
	return a.StaffID, true
}
