package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/davidtran-dev/meeting-notes/errors"
	dto "github.com/davidtran-dev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/calendar"
)

// Calendar handles calendar integration HTTP requests
type Calendar struct {
	calendarService *calendar.Service
	logger          *zap.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *calendar.Service, logger *zap.Logger) *Calendar {
	return &Calendar{
		calendarService: calendarService,
		logger:          logger,
	}
}

// Integrate handles POST /calendar_integration
func (h *Calendar) Integrate(c echo.Context) error {
	var req dto.CalendarIntegrationRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("action_items is required"))
	}

	results, err := h.calendarService.PushItems(c.Request().Context(), req.ActionItems)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.CalendarIntegrationResponse{
		Success: true,
		Results: results,
	})
}

// Auth handles GET /calendar/auth and redirects to the Google consent page
func (h *Calendar) Auth(c echo.Context) error {
	authURL, err := h.calendarService.AuthURL()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /calendar/callback from Google
func (h *Calendar) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")

	if err := h.calendarService.HandleCallback(c.Request().Context(), state, code); err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Google Calendar connected",
	})
}
