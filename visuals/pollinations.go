// Package visuals generates content images via Pollinations.ai.
package visuals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"influencer-pipeline/config"
)

// Fetcher generates AI images via Pollinations.ai (free, no key needed).
type Fetcher struct {
	cfg        *config.Config
	log        *logrus.Logger
	httpClient *http.Client
	baseURL    string
	retryDelay time.Duration
}

// New creates a Fetcher.
func New(cfg *config.Config, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		cfg:        cfg,
		log:        logger,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    "https://image.pollinations.ai",
		retryDelay: 3 * time.Second,
	}
}

// Generate renders an image for the idea and saves it to outFile. The
// service occasionally times out, so the download is attempted up to three
// times before giving up.
func (f *Fetcher) Generate(ctx context.Context, prompt, outFile string) error {
	imageURL := fmt.Sprintf(
		"%s/prompt/%s?width=%d&height=%d&nologo=true&model=%s",
		f.baseURL,
		url.PathEscape(stylePrompt(prompt)),
		f.cfg.Visuals.Width,
		f.cfg.Visuals.Height,
		f.cfg.Visuals.Model,
	)

	f.log.WithField("out", outFile).Info("Generating content image")

	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		err = f.download(ctx, imageURL, outFile)
		if err == nil {
			return nil
		}
		f.log.WithError(err).WithField("attempt", attempt).Warn("Image fetch failed")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * f.retryDelay):
		}
	}
	return fmt.Errorf("pollinations fetch failed after 3 attempts: %w", err)
}

func (f *Fetcher) download(ctx context.Context, imageURL, outFile string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; InfluencerPipeline/1.0)")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from Pollinations", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// A tiny body is an error page, not an image
	if len(data) < 100 {
		return fmt.Errorf("response too small (%d bytes)", len(data))
	}

	return os.WriteFile(outFile, data, 0644)
}

// stylePrompt wraps the content idea with style modifiers suited to vertical
// social video thumbnails.
func stylePrompt(idea string) string {
	return fmt.Sprintf(
		"Vibrant, eye-catching social media image illustrating: %q. "+
			"Style: modern, colorful, trendy. Portrait composition, high resolution, "+
			"centered subject, professional, optimized for social feeds. "+
			"No text, no watermark.",
		idea,
	)
}
