// Package research supplies trending-topic context for idea generation by
// reading hot posts from a subreddit mapped to each topic.
package research

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vartanbeno/go-reddit/v2/reddit"

	"influencer-pipeline/config"
)

// RedditResearcher fetches hot post titles for a topic's subreddit. Topics
// with no configured subreddit yield no trends, which the pipeline treats
// the same as research being disabled.
type RedditResearcher struct {
	cfg    *config.Config
	log    *logrus.Logger
	client *reddit.Client
}

// New creates a RedditResearcher with a read-only Reddit client.
func New(cfg *config.Config, logger *logrus.Logger) (*RedditResearcher, error) {
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &RedditResearcher{cfg: cfg, log: logger, client: client}, nil
}

// TrendingTitles returns up to limit hot post titles for the topic.
func (r *RedditResearcher) TrendingTitles(ctx context.Context, topic string, limit int) ([]string, error) {
	subreddit, ok := r.cfg.Research.Subreddits[topic]
	if !ok {
		return nil, nil
	}

	posts, _, err := r.client.Subreddit.HotPosts(ctx, subreddit, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("r/%s hot posts: %w", subreddit, err)
	}

	titles := make([]string, 0, len(posts))
	for _, post := range posts {
		if post.Title != "" {
			titles = append(titles, post.Title)
		}
	}

	r.log.WithFields(logrus.Fields{
		"topic":     topic,
		"subreddit": subreddit,
		"titles":    len(titles),
	}).Debug("Fetched trending titles")

	return titles, nil
}
