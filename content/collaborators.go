package content

import (
	"context"

	"influencer-pipeline/types"
)

// TextGenerator produces the text artifacts for one piece of content.
// GenerateIdeas returns several candidate ideas as one blob of text with
// candidates separated by blank lines.
type TextGenerator interface {
	GenerateIdeas(ctx context.Context, topic string, trends []string) (string, error)
	GenerateVideoScript(ctx context.Context, idea string) (string, error)
	GeneratePostDescription(ctx context.Context, idea string) (string, error)
}

// ImageGenerator renders an image for the given prompt into outFile.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, outFile string) error
}

// SpeechSynthesizer converts text to spoken audio at outFile.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, outFile string) error
}

// VideoComposer builds a video from a still image and an audio track.
type VideoComposer interface {
	Compose(ctx context.Context, imageFile, audioFile, outFile string) error
}

// Publisher posts a finished video to the target platform. The production
// and simulated implementations are interchangeable behind this interface.
type Publisher interface {
	Publish(ctx context.Context, videoFile, description string) (types.PublishResult, error)
}

// TrendResearcher supplies current trending titles for a topic. It is
// optional: a nil researcher disables the research step entirely, and a
// failing one is logged and ignored.
type TrendResearcher interface {
	TrendingTitles(ctx context.Context, topic string, limit int) ([]string, error)
}
