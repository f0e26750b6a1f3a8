package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Piper is the local neural synthesis provider. It shells out to the
// piper binary with an on-disk voice model. Output is wav.
type Piper struct {
	binary    string
	modelPath string
}

func NewPiper(binary, modelPath string) *Piper {
	if binary == "" {
		binary = "piper"
	}
	return &Piper{binary: binary, modelPath: modelPath}
}

func (p *Piper) Name() string   { return "piper" }
func (p *Piper) Format() string { return "wav" }

// Available requires the voice model file to be present on disk.
func (p *Piper) Available() bool {
	if p.modelPath == "" {
		return false
	}
	info, err := os.Stat(p.modelPath)
	return err == nil && !info.IsDir()
}

func (p *Piper) Synthesize(ctx context.Context, text string, _ VoiceSettings) ([]byte, error) {
	outPath := filepath.Join(os.TempDir(), "voicebox-piper-"+uuid.NewString()+".wav")
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, p.binary,
		"--model", p.modelPath,
		"--output_file", outPath,
	)
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper synthesis failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read piper output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("piper produced empty audio")
	}
	return data, nil
}
