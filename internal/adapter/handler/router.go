package handler

import (
	"github.com/labstack/echo/v4"
)

// Router holds all handlers
type Router struct {
	meetingHandler  *Meeting
	exportHandler   *Export
	calendarHandler *Calendar
}

// NewRouter creates a new router with all handlers
func NewRouter(meetingHandler *Meeting, exportHandler *Export, calendarHandler *Calendar) *Router {
	return &Router{
		meetingHandler:  meetingHandler,
		exportHandler:   exportHandler,
		calendarHandler: calendarHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.meetingHandler.Index)
	e.GET("/health", rt.meetingHandler.Health)

	e.POST("/process_audio", rt.meetingHandler.ProcessAudio)
	e.GET("/meetings", rt.meetingHandler.ListMeetings)
	e.GET("/meeting/:id", rt.meetingHandler.ViewMeeting)
	e.PATCH("/action_items/:id", rt.meetingHandler.UpdateActionItem)

	e.GET("/export/:id/:format", rt.exportHandler.ExportMeeting)

	e.POST("/calendar_integration", rt.calendarHandler.Integrate)
	e.GET("/calendar/auth", rt.calendarHandler.Auth)
	e.GET("/calendar/callback", rt.calendarHandler.Callback)
}
