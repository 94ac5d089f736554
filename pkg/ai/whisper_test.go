package ai

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davidtran-dev/meeting-notes/pkg/config"
)

type fakeExecutor struct {
	gotName string
	gotArgs []string
	run     func(args []string) error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.gotName = name
	f.gotArgs = args
	if f.run != nil {
		if err := f.run(args); err != nil {
			return "", err
		}
	}
	return "", nil
}

func TestWhisperTranscribe(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "standup.wav")

	fake := &fakeExecutor{
		run: func(args []string) error {
			// whisper.cpp writes <prefix>.txt when given -otxt
			prefix := filepath.Join(dir, "standup")
			return os.WriteFile(prefix+".txt", []byte("  John will send the report.\n"), 0644)
		},
	}

	tr := NewWhisperTranscriber(&config.WhisperConfig{
		BinaryPath: "/usr/local/bin/whisper",
		ModelPath:  "/models/ggml-base.bin",
		Language:   "en",
		Threads:    4,
	}, fake)

	text, err := tr.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "John will send the report." {
		t.Errorf("text = %q, want trimmed transcript", text)
	}

	joined := strings.Join(fake.gotArgs, " ")
	for _, want := range []string{"-m /models/ggml-base.bin", "-f " + audioPath, "-otxt", "-l en", "-t 4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if fake.gotName != "/usr/local/bin/whisper" {
		t.Errorf("binary = %q", fake.gotName)
	}
}

func TestWhisperTranscribeEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "silence.mp3")

	fake := &fakeExecutor{
		run: func(args []string) error {
			return os.WriteFile(filepath.Join(dir, "silence.txt"), []byte("   \n"), 0644)
		},
	}

	tr := NewWhisperTranscriber(&config.WhisperConfig{BinaryPath: "whisper", ModelPath: "m.bin"}, fake)
	if _, err := tr.Transcribe(context.Background(), audioPath); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}
