package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/davidtran-dev/meeting-notes/pkg/config"
)

// AssemblyAITranscriber transcribes audio through the hosted AssemblyAI API.
// It uploads the local file, submits a transcript job and polls until done.
type AssemblyAITranscriber struct {
	client       *aai.Client
	pollInterval time.Duration
}

// NewAssemblyAITranscriber creates a transcriber backed by the AssemblyAI SDK.
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig) *AssemblyAITranscriber {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &AssemblyAITranscriber{
		client:       aai.NewClient(cfg.APIKey),
		pollInterval: interval,
	}
}

// Transcribe uploads the audio file and waits for the transcript to complete.
func (a *AssemblyAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	uploadURL, err := a.client.Upload(ctx, f)
	if err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	transcript, err := a.client.Transcripts.TranscribeFromURL(ctx, uploadURL, &aai.TranscriptOptionalParams{})
	if err != nil {
		return "", fmt.Errorf("failed to submit transcript job: %w", err)
	}
	if transcript.ID == nil {
		return "", fmt.Errorf("assemblyai returned transcript without id")
	}

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		transcript, err = a.client.Transcripts.Get(ctx, *transcript.ID)
		if err != nil {
			return "", fmt.Errorf("failed to poll transcript: %w", err)
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			if transcript.Text == nil || *transcript.Text == "" {
				return "", fmt.Errorf("assemblyai returned empty transcript")
			}
			return *transcript.Text, nil
		case aai.TranscriptStatusError:
			msg := "unknown error"
			if transcript.Error != nil {
				msg = *transcript.Error
			}
			return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
		}
	}
}
