// Package textgen generates all text artifacts via the Groq chat-completion
// API (OpenAI-compatible).
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"influencer-pipeline/config"
)

const apiURL = "https://api.groq.com/openai/v1/chat/completions"

const systemPrompt = `You are an expert in creating viral short-form social video content. You write punchy, trend-aware ideas, scripts and captions for a faceless vertical-video channel.`

// Client calls the Groq API for idea, script and description generation.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	apiURL     string
}

// New creates a Client. The API key is read from GROQ_API_KEY at call time,
// so a missing key fails the call rather than startup.
func New(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiURL:     apiURL,
	}
}

// GenerateIdeas asks for several candidate ideas on a topic, returned as one
// blob with candidates separated by blank lines. Trending titles, when
// available, steer the model toward current conversation.
func (c *Client) GenerateIdeas(ctx context.Context, topic string, trends []string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d viral short-video content ideas about %q.\n", c.cfg.TextGen.IdeaCount, topic)
	sb.WriteString("For each idea include a catchy title, a one-sentence description, and 2-3 relevant hashtags.\n")
	sb.WriteString("Separate each idea from the next with exactly one blank line. No numbering, no preamble.\n")
	if len(trends) > 0 {
		sb.WriteString("\nPosts currently trending on this topic:\n")
		for _, t := range trends {
			sb.WriteString("- " + t + "\n")
		}
	}
	return c.complete(ctx, sb.String())
}

// GenerateVideoScript writes a short spoken script for the given idea.
func (c *Client) GenerateVideoScript(ctx context.Context, idea string) (string, error) {
	prompt := fmt.Sprintf(`Write a short, engaging script for a vertical video based on this idea: %q.
The script must be 15-30 seconds of speech, hook the viewer in the first sentence, and end with a clear call to action.
Respond with the spoken words only.`, idea)
	return c.complete(ctx, prompt)
}

// GeneratePostDescription writes the caption posted alongside the video.
func (c *Client) GeneratePostDescription(ctx context.Context, idea string) (string, error) {
	prompt := fmt.Sprintf(`Write a captivating caption for a short-video post based on: %q.
Keep it under 150 characters, include relevant emojis, and add 5-7 popular, specific hashtags.`, idea)
	return c.complete(ctx, prompt)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY not set")
	}

	reqBody := chatRequest{
		Model: c.cfg.TextGen.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.TextGen.Temperature,
		MaxTokens:   c.cfg.TextGen.MaxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse groq response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("groq error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
