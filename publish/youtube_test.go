package publish

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"influencer-pipeline/config"
	"influencer-pipeline/logging"
)

func TestTitleFrom(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "first line only",
			description: "Morning routine that changed my life\n\n#fitness #routine",
			want:        "Morning routine that changed my life",
		},
		{
			name:        "single line",
			description: "Five minute core workout",
			want:        "Five minute core workout",
		},
		{
			name:        "trims whitespace",
			description: "  Spaced out title  \nrest",
			want:        "Spaced out title",
		},
		{
			name:        "truncates long line",
			description: strings.Repeat("a", 200),
			want:        strings.Repeat("a", 95),
		},
		{
			name:        "empty falls back",
			description: "\n#onlyhashtags",
			want:        "Daily short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, titleFrom(tt.description))
		})
	}
}

func TestPublishFailsWithoutCredentials(t *testing.T) {
	t.Setenv("YOUTUBE_CLIENT_ID", "")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "")
	t.Setenv("YOUTUBE_REFRESH_TOKEN", "")

	u := NewYouTubeUploader(config.Default(), logging.NewLogger())
	_, err := u.Publish(context.Background(), "video.mp4", "caption")
	require.ErrorContains(t, err, "youtube auth")
}
