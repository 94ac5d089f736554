package handler

import (
	stdErrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/davidtran-dev/meeting-notes/errors"
	dto "github.com/davidtran-dev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/notes"
)

// transcriptionPreviewLen is the cut-off applied to the transcription
// included in the process_audio response
const transcriptionPreviewLen = 500

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Meeting handles upload and meeting-view HTTP requests
type Meeting struct {
	notesService notes.Service
	uploadDir    string
	allowedExts  map[string]bool
	logger       *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(notesService notes.Service, uploadDir string, allowedExts []string, logger *zap.Logger) *Meeting {
	exts := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		exts[strings.ToLower(ext)] = true
	}
	return &Meeting{
		notesService: notesService,
		uploadDir:    uploadDir,
		allowedExts:  exts,
		logger:       logger,
	}
}

// Index handles GET /
func (h *Meeting) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service": "meeting-notes",
		"endpoints": []string{
			"POST /process_audio",
			"GET /meetings",
			"GET /meeting/:id",
			"GET /export/:id/:format",
			"POST /calendar_integration",
			"GET /health",
		},
	})
}

// Health handles GET /health
func (h *Meeting) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ProcessAudio handles POST /process_audio
func (h *Meeting) ProcessAudio(c echo.Context) error {
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingAudioFile())
	}
	if fileHeader.Filename == "" {
		return HandleError(h.logger, c, errors.ErrEmptyFilename())
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !h.allowedExts[ext] {
		return HandleError(h.logger, c, errors.ErrUnsupportedExtension(ext))
	}

	audioPath, err := h.saveUpload(fileHeader)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("save upload", err))
	}

	title := c.FormValue("meeting_title")
	if title == "" {
		title = "Untitled Meeting"
	}
	date := c.FormValue("meeting_date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	attendees := c.FormValue("attendees")

	result, err := h.notesService.ProcessAudio(c.Request().Context(), notes.ProcessInput{
		AudioPath:    audioPath,
		Title:        title,
		Date:         date,
		Participants: attendees,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.ProcessAudioResponse{
		Success:       true,
		MeetingID:     result.Meeting.ID,
		Summary:       result.Meeting.Summary,
		ActionItems:   dto.NewActionItemResponses(result.ActionItems),
		Transcription: truncateTranscription(result.Meeting.Transcription),
	})
}

// ViewMeeting handles GET /meeting/:id
func (h *Meeting) ViewMeeting(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return redirectWithError(c, "Invalid meeting id")
	}

	meeting, items, err := h.notesService.GetMeeting(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMeetingNotFound) {
			return redirectWithError(c, "Meeting not found")
		}
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.NewMeetingResponse(meeting, items))
}

// ListMeetings handles GET /meetings
func (h *Meeting) ListMeetings(c echo.Context) error {
	meetings, err := h.notesService.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, dto.NewMeetingListItems(meetings))
}

// UpdateActionItem handles PATCH /action_items/:id
func (h *Meeting) UpdateActionItem(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid action item id"))
	}

	var req dto.UpdateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("completed field is required"))
	}

	item, err := h.notesService.SetItemCompleted(c.Request().Context(), id, *req.Completed)
	if err != nil {
		if stdErrors.Is(err, entities.ErrActionItemNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("Action item"))
		}
		return HandleError(h.logger, c, err)
	}

	resp := dto.NewActionItemResponse(item)
	return c.JSON(http.StatusOK, resp)
}

// saveUpload writes the uploaded file into the upload directory under a
// unique sanitized name and returns the path
func (h *Meeting) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + "_" + sanitizeFilename(fileHeader.Filename)
	dstPath := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", err
	}
	return dstPath, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// redirectWithError sends the client back to the index with an error
// message in the query string
func redirectWithError(c echo.Context, message string) error {
	return c.Redirect(http.StatusFound, "/?error="+url.QueryEscape(message))
}

// truncateTranscription shortens long transcriptions for the upload
// response body
func truncateTranscription(transcription string) string {
	runes := []rune(transcription)
	if len(runes) <= transcriptionPreviewLen {
		return transcription
	}
	return string(runes[:transcriptionPreviewLen]) + "..."
}

// sanitizeFilename strips path components and unsafe characters from an
// uploaded filename
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	return base
}
