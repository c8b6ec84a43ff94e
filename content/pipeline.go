package content

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"influencer-pipeline/config"
	"influencer-pipeline/monitoring"
	"influencer-pipeline/types"
)

// Collaborators bundles the external services the pipeline calls. Research
// is optional; everything else is required.
type Collaborators struct {
	Text      TextGenerator
	Image     ImageGenerator
	Speech    SpeechSynthesizer
	Composer  VideoComposer
	Publisher Publisher
	Research  TrendResearcher
}

// Pipeline produces one ContentRecord from nothing, optionally followed by
// publishing it. Steps within one run are strictly sequential; a step's
// failure aborts the whole run, leaving artifacts from earlier steps on disk.
type Pipeline struct {
	cfg     *config.Config
	log     *logrus.Logger
	co      Collaborators
	dir     string
	metrics *monitoring.Metrics
	mode    string

	now  func() time.Time
	pick func(n int) int
}

// New creates a Pipeline writing artifacts under cfg.Content.Dir.
func New(cfg *config.Config, logger *logrus.Logger, co Collaborators, metrics *monitoring.Metrics) *Pipeline {
	mode := "simulated"
	if cfg.Production() {
		mode = "live"
	}
	return &Pipeline{
		cfg:     cfg,
		log:     logger,
		co:      co,
		dir:     cfg.Content.Dir,
		metrics: metrics,
		mode:    mode,
		now:     time.Now,
		pick:    rand.Intn,
	}
}

// GenerateIdea picks a random topic, asks the text generator for several
// candidate ideas, and returns a fresh ContentRecord holding one of them.
func (p *Pipeline) GenerateIdea(ctx context.Context) (*types.ContentRecord, error) {
	if len(p.cfg.Content.Topics) == 0 {
		return nil, fmt.Errorf("%w: no topics configured", ErrGeneration)
	}
	topic := p.cfg.Content.Topics[p.pick(len(p.cfg.Content.Topics))]
	p.log.WithField("topic", topic).Info("Generating content ideas")

	var trends []string
	if p.co.Research != nil {
		titles, err := p.co.Research.TrendingTitles(ctx, topic, p.cfg.Research.MaxPosts)
		if err != nil {
			p.log.WithError(err).Warn("Trend research failed, continuing without trends")
		} else {
			trends = titles
		}
	}

	blob, err := p.co.Text.GenerateIdeas(ctx, topic, trends)
	if err != nil {
		return nil, fmt.Errorf("%w: ideas: %v", ErrGeneration, err)
	}

	candidates := splitIdeas(blob)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: text generator returned no usable ideas", ErrGeneration)
	}
	idea := candidates[p.pick(len(candidates))]
	p.log.WithField("idea", truncate(idea, 80)).Info("Selected content idea")

	return &types.ContentRecord{
		ID:        uuid.NewString(),
		Topic:     topic,
		Idea:      idea,
		CreatedAt: p.now().UTC(),
	}, nil
}

// CreateContent runs the full generation sequence and persists the resulting
// metadata document. Artifacts from completed steps are not rolled back when
// a later step fails.
func (p *Pipeline) CreateContent(ctx context.Context) (*types.ContentRecord, error) {
	record, err := p.GenerateIdea(ctx)
	if err != nil {
		return nil, err
	}

	p.log.WithField("content_id", record.ID).Info("Generating video script")
	record.VideoScript, err = p.co.Text.GenerateVideoScript(ctx, record.Idea)
	if err != nil {
		return nil, fmt.Errorf("%w: video script: %v", ErrGeneration, err)
	}

	p.log.WithField("content_id", record.ID).Info("Generating post description")
	record.PostDescription, err = p.co.Text.GeneratePostDescription(ctx, record.Idea)
	if err != nil {
		return nil, fmt.Errorf("%w: post description: %v", ErrGeneration, err)
	}

	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create content dir: %v", ErrPersistence, err)
	}

	p.log.WithField("content_id", record.ID).Info("Generating image")
	imagePath := filepath.Join(p.dir, record.ID+"_image.jpg")
	if err := p.co.Image.Generate(ctx, record.Idea, imagePath); err != nil {
		return nil, fmt.Errorf("%w: image: %v", ErrGeneration, err)
	}
	record.ImagePath = imagePath

	p.log.WithField("content_id", record.ID).Info("Synthesizing audio")
	audioPath := filepath.Join(p.dir, record.ID+"_audio.mp3")
	if err := p.co.Speech.Synthesize(ctx, record.VideoScript, audioPath); err != nil {
		return nil, fmt.Errorf("%w: speech: %v", ErrGeneration, err)
	}
	record.AudioPath = audioPath

	p.log.WithField("content_id", record.ID).Info("Composing video")
	videoPath := filepath.Join(p.dir, record.ID+"_video.mp4")
	if err := p.co.Composer.Compose(ctx, imagePath, audioPath, videoPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComposition, err)
	}
	record.VideoPath = videoPath

	if err := p.saveRecord(record); err != nil {
		return nil, err
	}

	p.log.WithField("content_id", record.ID).Info("Content created")
	return record, nil
}

// PublishContent loads a persisted record by id, invokes the publish
// collaborator and re-persists the record with its publish sub-record set.
// Repeated calls overwrite the previous publish sub-record.
func (p *Pipeline) PublishContent(ctx context.Context, contentID string) (types.PublishOutcome, error) {
	record, err := p.loadRecord(contentID)
	if err != nil {
		return types.PublishOutcome{}, err
	}

	p.log.WithField("content_id", contentID).Info("Publishing content")
	result, err := p.co.Publisher.Publish(ctx, record.VideoPath, record.PostDescription)
	if err != nil {
		p.metrics.Publish(p.mode, "error")
		return types.PublishOutcome{}, fmt.Errorf("publish %s: %w", contentID, err)
	}
	p.metrics.Publish(p.mode, "success")

	record.Published = &types.PublishRecord{
		Timestamp: p.now().UTC(),
		Result:    result,
	}
	if err := p.saveRecord(record); err != nil {
		return types.PublishOutcome{}, err
	}

	p.log.WithFields(logrus.Fields{
		"content_id": contentID,
		"publish_id": result.ID,
	}).Info("Content published")

	return types.PublishOutcome{ContentID: contentID, PublishResult: result}, nil
}

// CreateAndPublish runs CreateContent then PublishContent on the new record.
// A failure in either stage propagates unchanged.
func (p *Pipeline) CreateAndPublish(ctx context.Context) (types.PublishOutcome, error) {
	record, err := p.CreateContent(ctx)
	if err != nil {
		return types.PublishOutcome{}, err
	}
	return p.PublishContent(ctx, record.ID)
}

func (p *Pipeline) metadataPath(contentID string) string {
	return filepath.Join(p.dir, contentID+"_metadata.json")
}

func (p *Pipeline) loadRecord(contentID string) (*types.ContentRecord, error) {
	path := p.metadataPath(contentID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, contentID)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistence, path, err)
	}
	var record types.ContentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrPersistence, path, err)
	}
	return &record, nil
}

func (p *Pipeline) saveRecord(record *types.ContentRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPersistence, record.ID, err)
	}
	if err := os.WriteFile(p.metadataPath(record.ID), data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, record.ID, err)
	}
	return nil
}

// splitIdeas breaks the generator's blob into candidates on blank-line
// boundaries, dropping empty fragments so malformed model output surfaces as
// an error instead of an empty idea.
func splitIdeas(blob string) []string {
	var out []string
	for _, part := range strings.Split(blob, "\n\n") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
