package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Content  ContentConfig  `yaml:"content"`
	Schedule ScheduleConfig `yaml:"schedule"`
	TextGen  TextGenConfig  `yaml:"textgen"`
	Visuals  VisualsConfig  `yaml:"visuals"`
	Audio    AudioConfig    `yaml:"audio"`
	Render   RenderConfig   `yaml:"render"`
	Publish  PublishConfig  `yaml:"publish"`
	Research ResearchConfig `yaml:"research"`
}

type AppConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"` // development | production
}

type ContentConfig struct {
	Topics []string `yaml:"topics"`
	Dir    string   `yaml:"dir"`
}

type ScheduleConfig struct {
	Times       []string `yaml:"times"` // HH:MM local wall-clock
	HistoryPath string   `yaml:"history_path"`
}

type TextGenConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	IdeaCount   int     `yaml:"idea_count"`
}

type VisualsConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Model  string `yaml:"model"`
}

type AudioConfig struct {
	TTSCommand string `yaml:"tts_command"` // empty: fall back to edge-tts
	Voice      string `yaml:"voice"`
}

type RenderConfig struct {
	Resolution string `yaml:"resolution"` // WxH, portrait for short-form
	FPS        int    `yaml:"fps"`
}

type PublishConfig struct {
	Visibility      string `yaml:"visibility"`
	CategoryID      string `yaml:"category_id"`
	DefaultLanguage string `yaml:"default_language"`
	MadeForKids     bool   `yaml:"made_for_kids"`
}

type ResearchConfig struct {
	Enabled    bool              `yaml:"enabled"`
	Subreddits map[string]string `yaml:"subreddits"` // topic -> subreddit
	MaxPosts   int               `yaml:"max_posts"`
}

// Load reads the YAML config file and fills in defaults. A missing file is
// not an error: the defaults alone describe a working development setup.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Port == "" {
		c.App.Port = GetEnv("PORT", "3000")
	}
	if c.App.Env == "" {
		c.App.Env = GetEnv("APP_ENV", "development")
	}
	if len(c.Content.Topics) == 0 {
		c.Content.Topics = []string{
			"fashion trends", "beauty tips", "fitness", "lifestyle",
			"technology", "travel", "cooking", "personal growth",
		}
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "data/content"
	}
	if len(c.Schedule.Times) == 0 {
		c.Schedule.Times = []string{"10:00", "15:00", "20:00"}
	}
	if c.Schedule.HistoryPath == "" {
		c.Schedule.HistoryPath = "data/publish_history.json"
	}
	if c.TextGen.Model == "" {
		c.TextGen.Model = "llama-3.3-70b-versatile"
	}
	if c.TextGen.Temperature == 0 {
		c.TextGen.Temperature = 0.7
	}
	if c.TextGen.MaxTokens == 0 {
		c.TextGen.MaxTokens = 500
	}
	if c.TextGen.IdeaCount == 0 {
		c.TextGen.IdeaCount = 5
	}
	if c.Visuals.Width == 0 {
		c.Visuals.Width = 1080
	}
	if c.Visuals.Height == 0 {
		c.Visuals.Height = 1920
	}
	if c.Visuals.Model == "" {
		c.Visuals.Model = "flux"
	}
	if c.Audio.Voice == "" {
		c.Audio.Voice = "en-US-GuyNeural"
	}
	if c.Render.Resolution == "" {
		c.Render.Resolution = "1080x1920"
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = 30
	}
	if c.Publish.Visibility == "" {
		c.Publish.Visibility = "public"
	}
	if c.Publish.CategoryID == "" {
		c.Publish.CategoryID = "22" // People & Blogs
	}
	if c.Publish.DefaultLanguage == "" {
		c.Publish.DefaultLanguage = "en"
	}
	if c.Research.MaxPosts == 0 {
		c.Research.MaxPosts = 10
	}
}

// Production reports whether the real publish collaborator should be used.
func (c *Config) Production() bool {
	return c.App.Env == "production"
}
