package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"influencer-pipeline/logging"
	"influencer-pipeline/monitoring"
	"influencer-pipeline/types"
)

// ContentService is the slice of the content pipeline the facade needs.
type ContentService interface {
	CreateContent(ctx context.Context) (*types.ContentRecord, error)
	PublishContent(ctx context.Context, contentID string) (types.PublishOutcome, error)
	CreateAndPublish(ctx context.Context) (types.PublishOutcome, error)
}

// ScheduleService exposes the upcoming-schedule view.
type ScheduleService interface {
	UpcomingSchedule() []types.ScheduleEntry
}

// HistoryService exposes the publish-history document.
type HistoryService interface {
	Load() (types.HistoryDocument, error)
}

// Handlers wraps pipeline, scheduler and history operations into the HTTP
// response envelope.
type Handlers struct {
	log        logging.Logger
	content    ContentService
	schedule   ScheduleService
	history    HistoryService
	metrics    *monitoring.Metrics
	env        string
	contentDir string
}

// NewHandlers creates the facade handlers.
func NewHandlers(logger logging.Logger, content ContentService, schedule ScheduleService, history HistoryService, metrics *monitoring.Metrics, env, contentDir string) *Handlers {
	return &Handlers{
		log:        logger,
		content:    content,
		schedule:   schedule,
		history:    history,
		metrics:    metrics,
		env:        env,
		contentDir: contentDir,
	}
}

// Register mounts all facade routes on the router.
func (h *Handlers) Register(router *gin.Engine) {
	router.Static("/content", h.contentDir)

	api := router.Group("/api")
	api.GET("/status", h.GetStatus)
	api.POST("/content/generate", h.GenerateContent)
	api.POST("/content/publish/:contentId", h.PublishContent)
	api.POST("/content/create-and-publish", h.CreateAndPublish)
	api.GET("/history", h.GetHistory)
}

// GetStatus reports the service state and upcoming schedule.
func (h *Handlers) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "running",
		"environment":      h.env,
		"upcomingSchedule": h.schedule.UpcomingSchedule(),
	})
}

// GenerateContent runs content generation without publishing.
func (h *Handlers) GenerateContent(c *gin.Context) {
	record, err := h.content.CreateContent(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Content generation failed")
		h.metrics.ManualRun("generate", "error")
		h.fail(c, err)
		return
	}

	h.metrics.ManualRun("generate", "success")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"content": gin.H{
			"id":        record.ID,
			"topic":     record.Topic,
			"idea":      record.Idea,
			"createdAt": record.CreatedAt,
		},
	})
}

// PublishContent publishes an already-generated record by id.
func (h *Handlers) PublishContent(c *gin.Context) {
	contentID := c.Param("contentId")

	outcome, err := h.content.PublishContent(c.Request.Context(), contentID)
	if err != nil {
		h.log.WithError(err).WithField("content_id", contentID).Error("Content publish failed")
		h.metrics.ManualRun("publish", "error")
		h.fail(c, err)
		return
	}

	h.metrics.ManualRun("publish", "success")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  outcome,
	})
}

// CreateAndPublish runs the full pipeline in one request.
func (h *Handlers) CreateAndPublish(c *gin.Context) {
	outcome, err := h.content.CreateAndPublish(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Create-and-publish failed")
		h.metrics.ManualRun("create_and_publish", "error")
		h.fail(c, err)
		return
	}

	h.metrics.ManualRun("create_and_publish", "success")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  outcome,
	})
}

// GetHistory returns the persisted history document, or an empty one when
// nothing has been published yet.
func (h *Handlers) GetHistory(c *gin.Context) {
	doc, err := h.history.Load()
	if err != nil {
		h.log.WithError(err).Error("History read failed")
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handlers) fail(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
