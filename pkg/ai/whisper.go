package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davidtran-dev/meeting-notes/pkg/config"
	"github.com/davidtran-dev/meeting-notes/pkg/executor"
)

// WhisperTranscriber runs a local whisper.cpp binary against an audio file
// and reads the transcript from its text output.
type WhisperTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	exec       executor.Executor
}

// NewWhisperTranscriber creates a transcriber backed by whisper.cpp.
func NewWhisperTranscriber(cfg *config.WhisperConfig, exec executor.Executor) *WhisperTranscriber {
	return &WhisperTranscriber{
		binaryPath: cfg.BinaryPath,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		threads:    cfg.Threads,
		exec:       exec,
	}
}

// Transcribe converts the audio file at audioPath to text.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-otxt",
		"--output-file", outputPrefix,
	}
	if w.language != "" {
		args = append(args, "-l", w.language)
	}
	if w.threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.threads))
	}

	if _, err := w.exec.Execute(ctx, w.binaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper execution failed: %w", err)
	}

	transcriptPath := outputPrefix + ".txt"
	defer os.Remove(transcriptPath)

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("whisper produced empty transcript for %s", audioPath)
	}
	return text, nil
}
