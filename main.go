package main

import (
	"os"

	"influencer-pipeline/audio"
	"influencer-pipeline/config"
	"influencer-pipeline/content"
	"influencer-pipeline/history"
	"influencer-pipeline/logging"
	"influencer-pipeline/monitoring"
	"influencer-pipeline/publish"
	"influencer-pipeline/render"
	"influencer-pipeline/research"
	"influencer-pipeline/schedule"
	"influencer-pipeline/server"
	"influencer-pipeline/textgen"
	"influencer-pipeline/visuals"
)

const serviceName = "influencer-pipeline"

func main() {
	logger := logging.NewLoggerWithService(serviceName)
	config.LoadEnv(logger)

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.WithError(err).Fatal("Failed to load config")
	}

	if err := os.MkdirAll(cfg.Content.Dir, 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create content directory")
	}

	metrics := monitoring.New("influencer_pipeline")

	// Collaborators. The publisher variant follows the execution mode: a
	// simulated publisher in development, the real platform in production.
	var publisher content.Publisher
	if cfg.Production() {
		publisher = publish.NewYouTubeUploader(cfg, logger)
	} else {
		publisher = publish.NewSimulated(logger)
		logger.Info("Development mode: using simulated publisher")
	}

	var researcher content.TrendResearcher
	if cfg.Research.Enabled {
		r, err := research.New(cfg, logger)
		if err != nil {
			logger.WithError(err).Warn("Trend research unavailable, continuing without it")
		} else {
			researcher = r
		}
	}

	pipeline := content.New(cfg, logger, content.Collaborators{
		Text:      textgen.New(cfg),
		Image:     visuals.New(cfg, logger),
		Speech:    audio.New(cfg, logger),
		Composer:  render.New(cfg, logger),
		Publisher: publisher,
		Research:  researcher,
	}, metrics)

	historyStore := history.New(cfg.Schedule.HistoryPath)
	if err := historyStore.Ensure(); err != nil {
		logger.WithError(err).Fatal("Failed to create history document")
	}

	scheduler := schedule.New(cfg.Schedule.Times, pipeline, historyStore, logger, metrics)
	if err := scheduler.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start scheduler")
	}

	for _, entry := range scheduler.UpcomingSchedule() {
		logger.WithFields(logging.Fields{
			"time":          entry.ScheduledTime,
			"next":          entry.ScheduledDate,
			"minutes_until": entry.TimeUntil,
		}).Info("Upcoming publication")
	}

	handlers := server.NewHandlers(logger, pipeline, scheduler, historyStore, metrics, cfg.App.Env, cfg.Content.Dir)
	router := server.SetupRouter(logger, serviceName, handlers)

	if err := server.Start(server.DefaultConfig(serviceName, cfg.App.Port), router, logger); err != nil {
		logger.WithError(err).Error("Server shutdown error")
	}

	scheduler.Stop()
}
