// Package render composes the final video from a still image and a narration
// track using ffmpeg.
package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"influencer-pipeline/config"
)

// Composer builds portrait videos with ffmpeg: the image is looped for the
// full duration of the audio, scaled and padded to the target resolution.
type Composer struct {
	cfg *config.Config
	log *logrus.Logger
}

// New creates a Composer.
func New(cfg *config.Config, logger *logrus.Logger) *Composer {
	return &Composer{cfg: cfg, log: logger}
}

// Compose writes the video for imageFile + audioFile to outFile.
func (c *Composer) Compose(ctx context.Context, imageFile, audioFile, outFile string) error {
	if _, err := os.Stat(imageFile); err != nil {
		return fmt.Errorf("image missing: %w", err)
	}
	if _, err := os.Stat(audioFile); err != nil {
		return fmt.Errorf("audio missing: %w", err)
	}

	resolution := strings.Replace(c.cfg.Render.Resolution, "x", ":", 1)
	vf := fmt.Sprintf(
		"scale=%s:force_original_aspect_ratio=decrease,pad=%s:(ow-iw)/2:(oh-ih)/2,setsar=1",
		resolution, resolution,
	)

	c.log.WithField("out", outFile).Info("Composing video")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-loop", "1",
		"-framerate", fmt.Sprintf("%d", c.cfg.Render.FPS),
		"-i", imageFile,
		"-i", audioFile,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-c:a", "aac",
		"-b:a", "192k",
		"-pix_fmt", "yuv420p",
		"-shortest",
		"-vf", vf,
		"-movflags", "+faststart",
		outFile,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg compose: %w", err)
	}

	if dur, err := Duration(outFile); err == nil {
		c.log.WithFields(logrus.Fields{
			"out":      outFile,
			"duration": dur,
		}).Info("Video composed")
	}
	return nil
}

// Duration returns the length in seconds of a media file via ffprobe.
func Duration(mediaFile string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mediaFile,
	).Output()
	if err != nil {
		return 0, err
	}
	var dur float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur)
	return dur, err
}
