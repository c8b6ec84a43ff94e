package types

import "time"

// ContentRecord is one generated piece of content. Fields are filled in
// progressively as pipeline stages complete and the record is persisted as
// <id>_metadata.json under the content directory.
type ContentRecord struct {
	ID              string         `json:"id"`
	Topic           string         `json:"topic"`
	Idea            string         `json:"idea"`
	CreatedAt       time.Time      `json:"createdAt"`
	VideoScript     string         `json:"videoScript,omitempty"`
	PostDescription string         `json:"postDescription,omitempty"`
	ImagePath       string         `json:"imagePath,omitempty"`
	AudioPath       string         `json:"audioPath,omitempty"`
	VideoPath       string         `json:"videoPath,omitempty"`
	Published       *PublishRecord `json:"published,omitempty"`
}

// PublishRecord is added to a ContentRecord once a publish step succeeds.
type PublishRecord struct {
	Timestamp time.Time     `json:"timestamp"`
	Result    PublishResult `json:"result"`
}

// PublishResult is what the publish collaborator returns. The core treats it
// as opaque data to store and echo back.
type PublishResult struct {
	ID       string `json:"id"`
	URL      string `json:"url,omitempty"`
	Status   string `json:"status"`
	Platform string `json:"platform"`
}

// PublishOutcome pairs a publish result with the content it belongs to.
type PublishOutcome struct {
	ContentID     string        `json:"contentId"`
	PublishResult PublishResult `json:"publishResult"`
}

// HistoryEntry is one record of a completed publish action.
type HistoryEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	ContentID string        `json:"contentId"`
	Result    PublishResult `json:"result"`
}

// HistoryDocument is the shared publish-history JSON document.
type HistoryDocument struct {
	LastPublish *time.Time     `json:"lastPublish"`
	History     []HistoryEntry `json:"history"`
}

// ScheduleEntry is a derived view of one configured daily time. It is
// recomputed on every query and never persisted.
type ScheduleEntry struct {
	ScheduledTime string    `json:"scheduledTime"`
	ScheduledDate time.Time `json:"scheduledDate"`
	TimeUntil     int       `json:"timeUntil"`
}
