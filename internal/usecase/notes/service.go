package notes

import (
	"context"
	"os"

	"go.uber.org/zap"

	apperrors "github.com/davidtran-dev/meeting-notes/errors"
	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/domain/repositories"
)

// TranscriberClient converts an audio file into plain text
type TranscriberClient interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// AudioArchiver copies a processed recording to long-term storage
type AudioArchiver interface {
	ArchiveAudio(ctx context.Context, localPath string) (string, error)
}

// ProcessInput carries the upload form fields and the saved audio path
type ProcessInput struct {
	AudioPath    string
	Title        string
	Date         string
	Participants string
}

// ProcessResult is the outcome of one pipeline run
type ProcessResult struct {
	Meeting     *entities.Meeting
	ActionItems []*entities.ActionItem
}

// Service runs the meeting-notes pipeline and serves meeting lookups
type Service interface {
	// ProcessAudio runs the full pipeline: transcribe, summarize,
	// extract action items, persist
	ProcessAudio(ctx context.Context, input ProcessInput) (*ProcessResult, error)

	// GetMeeting returns one meeting with its action items
	GetMeeting(ctx context.Context, id uint) (*entities.Meeting, []*entities.ActionItem, error)

	// ListMeetings returns all meetings, newest first
	ListMeetings(ctx context.Context) ([]*entities.Meeting, error)

	// SetItemCompleted toggles the completed flag of an action item
	SetItemCompleted(ctx context.Context, itemID uint, completed bool) (*entities.ActionItem, error)
}

type notesService struct {
	transcriber TranscriberClient
	summarizer  *Summarizer
	meetingRepo repositories.MeetingRepository
	itemRepo    repositories.ActionItemRepository
	archiver    AudioArchiver
	logger      *zap.Logger
}

// NewService creates the notes pipeline service. archiver may be nil
// when no object storage is configured.
func NewService(
	transcriber TranscriberClient,
	summarizer *Summarizer,
	meetingRepo repositories.MeetingRepository,
	itemRepo repositories.ActionItemRepository,
	archiver AudioArchiver,
	logger *zap.Logger,
) Service {
	return &notesService{
		transcriber: transcriber,
		summarizer:  summarizer,
		meetingRepo: meetingRepo,
		itemRepo:    itemRepo,
		archiver:    archiver,
		logger:      logger,
	}
}

// ProcessAudio runs the full pipeline for one uploaded recording.
// The audio file is removed once processing finishes, whatever the outcome.
func (s *notesService) ProcessAudio(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	defer os.Remove(input.AudioPath)

	s.logger.Info("🎙️ Starting audio processing",
		zap.String("title", input.Title),
		zap.String("audio_path", input.AudioPath),
	)

	transcription, err := s.transcriber.Transcribe(ctx, input.AudioPath)
	if err != nil {
		s.logger.Error("❌ Transcription failed", zap.Error(err))
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	s.logger.Info("✅ Transcription complete", zap.Int("chars", len(transcription)))

	summary, err := s.summarizer.GenerateSummary(ctx, transcription)
	if err != nil {
		s.logger.Error("❌ Summary generation failed", zap.Error(err))
		return nil, apperrors.ErrSummaryFailed(err)
	}

	extracted := s.summarizer.ExtractActionItems(ctx, transcription)

	s.logger.Info("✅ Summary and action items generated",
		zap.Int("action_items", len(extracted)),
	)

	var audioObject *string
	if s.archiver != nil {
		object, archiveErr := s.archiver.ArchiveAudio(ctx, input.AudioPath)
		if archiveErr != nil {
			s.logger.Warn("⚠️ Audio archive failed", zap.Error(archiveErr))
		} else {
			audioObject = &object
		}
	}

	meeting := &entities.Meeting{
		Title:         input.Title,
		Date:          input.Date,
		Participants:  input.Participants,
		Transcription: transcription,
		Summary:       summary,
		AudioObject:   audioObject,
	}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		s.logger.Error("❌ Failed to save meeting", zap.Error(err))
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	items := make([]*entities.ActionItem, 0, len(extracted))
	for _, e := range extracted {
		items = append(items, &entities.ActionItem{
			MeetingID:   meeting.ID,
			Description: e.Description,
			Assignee:    e.Assignee,
			DueDate:     e.DueDate,
			Priority:    entities.Priority(e.Priority),
		})
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		s.logger.Error("❌ Failed to save action items",
			zap.Uint("meeting_id", meeting.ID),
			zap.Error(err),
		)
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	s.logger.Info("✅ Meeting processed",
		zap.Uint("meeting_id", meeting.ID),
		zap.Int("action_items", len(items)),
	)

	return &ProcessResult{Meeting: meeting, ActionItems: items}, nil
}

// GetMeeting returns one meeting with its action items
func (s *notesService) GetMeeting(ctx context.Context, id uint) (*entities.Meeting, []*entities.ActionItem, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.itemRepo.FindByMeetingID(ctx, id)
	if err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed(err)
	}
	return meeting, items, nil
}

// ListMeetings returns all meetings, newest first
func (s *notesService) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return meetings, nil
}

// SetItemCompleted toggles the completed flag of an action item
func (s *notesService) SetItemCompleted(ctx context.Context, itemID uint, completed bool) (*entities.ActionItem, error) {
	if err := s.itemRepo.SetCompleted(ctx, itemID, completed); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByID(ctx, itemID)
}
