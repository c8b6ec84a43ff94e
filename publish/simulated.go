package publish

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"influencer-pipeline/types"
)

// Simulated stands in for the real platform in development mode: no network
// call is made, and a fake result shaped like a real one is returned.
type Simulated struct {
	log *logrus.Logger
	n   atomic.Int64
}

// NewSimulated creates the development-mode publisher.
func NewSimulated(logger *logrus.Logger) *Simulated {
	return &Simulated{log: logger}
}

// Publish logs the would-be upload and returns a fake result. Overlapping
// runs may publish concurrently, so the id sequence is atomic.
func (s *Simulated) Publish(ctx context.Context, videoFile, description string) (types.PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return types.PublishResult{}, err
	}

	result := types.PublishResult{
		ID:       fmt.Sprintf("vid_sim_%06d", s.n.Add(1)),
		Status:   "published",
		Platform: "simulated",
	}

	s.log.WithFields(logrus.Fields{
		"video":       videoFile,
		"description": description,
		"publish_id":  result.ID,
	}).Info("[SIMULATION] Video publish")

	return result, nil
}
