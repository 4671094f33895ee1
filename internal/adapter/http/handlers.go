package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/usecase/dashboard"
)

type Handler struct{ dash *dashboard.Usecase }

func NewHandler(dash *dashboard.Usecase) *Handler { return &Handler{dash: dash} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Dashboard returns the borrower or admin view depending on the caller's role.
func (h *Handler) Dashboard(c echo.Context) error {
	view, err := h.dash.For(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
