package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// Player plays synthesized audio through the local output via the
// platform audio player.
type Player struct {
	volume float64
	goos   string
}

// NewPlayer creates a player. Volume outside 0.0-1.0 falls back to 0.8.
func NewPlayer(volume float64) *Player {
	if volume <= 0 || volume > 1 {
		volume = 0.8
	}
	return &Player{volume: volume, goos: runtime.GOOS}
}

// Play writes the audio to a uniquely named temporary file, invokes the
// platform player, and removes the file regardless of outcome.
func (p *Player) Play(ctx context.Context, data []byte, format string) error {
	path := filepath.Join(os.TempDir(), "voicebox-"+uuid.NewString()+"."+format)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write audio temp file: %w", err)
	}
	defer os.Remove(path)

	cmd := p.playerCommand(ctx, path, format)
	if cmd == nil {
		return fmt.Errorf("no audio player available for format %q", format)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio playback failed: %w", err)
	}
	return nil
}

// PlayFile plays an existing audio file (the chime) to completion.
func (p *Player) PlayFile(ctx context.Context, path string) error {
	format := filepath.Ext(path)
	if len(format) > 0 {
		format = format[1:]
	}
	cmd := p.playerCommand(ctx, path, format)
	if cmd == nil {
		return fmt.Errorf("no audio player available for format %q", format)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio playback failed: %w", err)
	}
	return nil
}

func (p *Player) playerCommand(ctx context.Context, path, format string) *exec.Cmd {
	if p.goos == "darwin" {
		return exec.CommandContext(ctx, "afplay", "-v", fmt.Sprintf("%.2f", p.volume), path)
	}

	// Linux: pick a player that handles the container. Volume scales
	// differ per tool.
	switch format {
	case "mp3":
		if _, err := exec.LookPath("mpg123"); err == nil {
			return exec.CommandContext(ctx, "mpg123", "-q", "-f", fmt.Sprintf("%d", int(p.volume*32768)), path)
		}
	case "wav", "aiff":
		if _, err := exec.LookPath("aplay"); err == nil {
			return exec.CommandContext(ctx, "aplay", "-q", path)
		}
	}
	if _, err := exec.LookPath("ffplay"); err == nil {
		return exec.CommandContext(ctx, "ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet",
			"-volume", fmt.Sprintf("%d", int(p.volume*100)), path)
	}
	return nil
}
