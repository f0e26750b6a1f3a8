package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

// PlatformSpeech wraps the operating system's built-in speech command
// (say on macOS, espeak elsewhere). It is the guaranteed last resort of
// the cascade and is always available.
type PlatformSpeech struct {
	voice string
	goos  string
}

func NewPlatformSpeech(voice string) *PlatformSpeech {
	return &PlatformSpeech{voice: voice, goos: runtime.GOOS}
}

func (p *PlatformSpeech) Name() string { return "platform" }

func (p *PlatformSpeech) Format() string {
	if p.goos == "darwin" {
		return "aiff"
	}
	return "wav"
}

func (p *PlatformSpeech) Available() bool { return true }

func (p *PlatformSpeech) Synthesize(ctx context.Context, text string, _ VoiceSettings) ([]byte, error) {
	outPath := filepath.Join(os.TempDir(), "voicebox-platform-"+uuid.NewString()+"."+p.Format())
	defer os.Remove(outPath)

	var cmd *exec.Cmd
	if p.goos == "darwin" {
		args := []string{"-o", outPath}
		if p.voice != "" {
			args = append(args, "-v", p.voice)
		}
		args = append(args, text)
		cmd = exec.CommandContext(ctx, "say", args...)
	} else {
		args := []string{"-w", outPath}
		if p.voice != "" {
			args = append(args, "-v", p.voice)
		}
		args = append(args, text)
		cmd = exec.CommandContext(ctx, "espeak", args...)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("platform speech failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read platform speech output: %w", err)
	}
	return data, nil
}
