// Package publish posts finished videos to the target platform. The real
// YouTube uploader and the simulated publisher implement the same interface
// and are selected by the execution mode at composition time.
package publish

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"influencer-pipeline/config"
	"influencer-pipeline/types"
)

// YouTubeUploader publishes videos as YouTube Shorts via the Data API v3.
type YouTubeUploader struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewYouTubeUploader creates the production publisher. Credentials are read
// from the environment at publish time, not validated at startup.
func NewYouTubeUploader(cfg *config.Config, logger *logrus.Logger) *YouTubeUploader {
	return &YouTubeUploader{cfg: cfg, log: logger}
}

// Publish uploads the video with the post description as its metadata.
func (u *YouTubeUploader) Publish(ctx context.Context, videoFile, description string) (types.PublishResult, error) {
	u.log.Info("Authenticating with YouTube API")

	client, err := u.oauthClient(ctx)
	if err != nil {
		return types.PublishResult{}, fmt.Errorf("youtube auth: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return types.PublishResult{}, fmt.Errorf("youtube service: %w", err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:                titleFrom(description),
			Description:          description,
			CategoryId:           u.cfg.Publish.CategoryID,
			DefaultLanguage:      u.cfg.Publish.DefaultLanguage,
			DefaultAudioLanguage: u.cfg.Publish.DefaultLanguage,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           u.cfg.Publish.Visibility,
			SelfDeclaredMadeForKids: u.cfg.Publish.MadeForKids,
		},
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return types.PublishResult{}, fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	u.log.WithField("video", videoFile).Info("Uploading video")

	call := svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return types.PublishResult{}, fmt.Errorf("youtube upload: %w", err)
	}

	result := types.PublishResult{
		ID:       uploaded.Id,
		URL:      fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id),
		Status:   "published",
		Platform: "youtube",
	}

	u.log.WithFields(logrus.Fields{
		"video_id": result.ID,
		"url":      result.URL,
	}).Info("Video published")

	return result, nil
}

// oauthClient builds an OAuth2 HTTP client from env credentials.
func (u *YouTubeUploader) oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}

	return conf.Client(ctx, token), nil
}

// titleFrom derives the upload title from the first line of the caption,
// within YouTube's title limit.
func titleFrom(description string) string {
	title := description
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	if len(title) > 95 {
		title = title[:95]
	}
	if title == "" {
		title = "Daily short"
	}
	return title
}
