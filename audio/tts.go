// Package audio synthesizes narration audio by shelling out to a TTS engine.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"influencer-pipeline/config"
)

// Synthesizer converts script text to speech via an external TTS command.
// Configure audio.tts_command to a binary/script accepting
//
//	--text "..." --output path/to/file.mp3
//
// When unset it falls back to edge-tts (free Microsoft TTS).
type Synthesizer struct {
	cfg *config.Config
	log *logrus.Logger
}

// New creates a Synthesizer.
func New(cfg *config.Config, logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{cfg: cfg, log: logger}
}

// Synthesize writes spoken audio for text to outFile.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outFile string) error {
	ttsCmd := strings.TrimSpace(s.cfg.Audio.TTSCommand)
	if ttsCmd == "" {
		if _, err := exec.LookPath("edge-tts"); err != nil {
			return fmt.Errorf("no TTS engine found: set audio.tts_command or install edge-tts (pip install edge-tts)")
		}
		ttsCmd = "edge-tts"
	}

	s.log.WithField("out", outFile).Info("Synthesizing speech audio")

	var cmd *exec.Cmd
	switch {
	case ttsCmd == "edge-tts":
		cmd = exec.CommandContext(ctx,
			"edge-tts",
			"--voice", s.cfg.Audio.Voice,
			"--text", text,
			"--write-media", outFile,
		)
	case strings.HasSuffix(ttsCmd, ".py"):
		cmd = exec.CommandContext(ctx,
			"python3", ttsCmd,
			"--text", text,
			"--output", outFile,
		)
	default:
		cmd = exec.CommandContext(ctx,
			ttsCmd,
			"--text", text,
			"--output", outFile,
		)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts command: %w", err)
	}
	return nil
}
