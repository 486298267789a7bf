package ai

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

var ErrEmptySuggestion = errors.New("model returned empty suggestion")

type SuggestClient struct {
	model string
}

func NewSuggestClient() *SuggestClient {
	model := os.Getenv("GEMINI_SUGGEST_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &SuggestClient{model: model}
}

// SuggestReply asks Gemini for a vendor reply draft based on the transcript.
func (c *SuggestClient) SuggestReply(ctx context.Context, subject string, turns []Turn) (string, error) {
	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[suggest] stage=client_init err=%v", err)
		return "", err
	}

	prompt := BuildSuggestPrompt(subject, turns)
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{Temperature: &temp}

	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[suggest] stage=generate_fail model=%s err=%v", c.model, err)
		return "", err
	}
	text := strings.TrimSpace(res.Text())
	log.Printf("[suggest] stage=done model=%s ms=%d len=%d", c.model, time.Since(start).Milliseconds(), len(text))
	if text == "" {
		return "", ErrEmptySuggestion
	}
	return text, nil
}
