package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/davidtran-dev/meeting-notes/errors"
	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/export"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/notes"
)

// Export handles meeting export HTTP requests
type Export struct {
	notesService notes.Service
	renderer     *export.Renderer
	logger       *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(notesService notes.Service, renderer *export.Renderer, logger *zap.Logger) *Export {
	return &Export{
		notesService: notesService,
		renderer:     renderer,
		logger:       logger,
	}
}

// ExportMeeting handles GET /export/:id/:format
func (h *Export) ExportMeeting(c echo.Context) error {
	format := c.Param("format")
	if format != "pdf" && format != "txt" {
		return HandleError(h.logger, c, errors.ErrUnsupportedFormat(format))
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting id"))
	}

	meeting, items, err := h.notesService.GetMeeting(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMeetingNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("Meeting"))
		}
		return HandleError(h.logger, c, err)
	}

	switch format {
	case "pdf":
		data, err := h.renderer.RenderPDF(meeting, items)
		if err != nil {
			return HandleError(h.logger, c, err)
		}

		filename := fmt.Sprintf("%s_summary.pdf", sanitizeFilename(meeting.Title))
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Blob(http.StatusOK, "application/pdf", data)

	default:
		return c.String(http.StatusOK, h.renderer.RenderText(meeting, items))
	}
}
