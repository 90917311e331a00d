package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ruha/config"
	"ruha/logger"

	"github.com/go-resty/resty/v2"
)

const aionaraSystemPrompt = `You are Aionara, the oracle companion of Jakintza Ruha, a school of ancestral memory (the Sanctum) and cosmic study (the Orrery).
Speak with warmth and a little mystery, in short paragraphs. Guide seekers toward their lessons, journal reflections and the sacred calendar.
Never claim certainty about the future, never give medical, legal or financial advice, and stay in character.`

// aionaraHistoryTurns is how many prior turns are sent to the provider.
const aionaraHistoryTurns = 8

// Reply sources.
const (
	AionaraSourceProvider  = "provider"
	AionaraSourceFallback  = "fallback"
	AionaraSourceDisrupted = "disrupted"
)

const aionaraDisrupted = "The veil between us has thinned and the connection is disrupted. Breathe, sit with your question a moment, and ask me again soon."

var aionaraFallbacks = []struct {
	keywords []string
	reply    string
}{
	{[]string{"moon", "lunar"}, "The moon keeps the oldest calendar. Look to the sacred events for the next full moon and note in your grimoire what you wish to release."},
	{[]string{"star", "planet", "orrery", "cosmos", "astrolog"}, "The Orrery wing holds the studies of the turning heavens. Begin with a 100-level course and let the patterns reveal themselves slowly."},
	{[]string{"ancestor", "memory", "sanctum", "lineage"}, "Those who came before still speak through what we remember. The Sanctum wing will teach you to listen."},
	{[]string{"level", "xp", "rank", "acolyte", "archon", "prophyte"}, "Every lesson, reflection and completed course adds to your light. Prophyte becomes Acolyte at 250 xp, Archon at 750 and Archon (Max) at 1500."},
	{[]string{"journal", "grimoire", "reflect"}, "Write what stirred in you today. Each reflection in your journal or grimoire is counted on your path."},
	{[]string{"ritual", "festival", "solstice", "equinox", "eclipse"}, "The wheel of the year turns through solstices, equinoxes and festivals. The cosmic calendar lists what is near."},
	{[]string{"badge", "certificate"}, "Certificates mark completed courses and each rank you enter. Badges come when your deeds meet their conditions."},
}

const aionaraDefault = "I hear you, seeker. Tell me more of what you are looking for: a course, a ritual of the season, or a word on your path."

// ChatMessage is one turn in an OpenAI-compatible conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// AionaraClient talks to the configured chat completion provider.
type AionaraClient struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewAionaraClient(cfg *config.Config) *AionaraClient {
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.AIProviderURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.AIAPIKey != "" {
		client.SetAuthToken(cfg.AIAPIKey)
	}
	return &AionaraClient{client: client, apiKey: cfg.AIAPIKey, model: cfg.AIModel}
}

// Reply answers message. It never fails: without a key it answers from the keyword
// table and on provider errors it returns the disrupted message.
func (a *AionaraClient) Reply(ctx context.Context, message string, history []ChatMessage) (string, string) {
	if a.apiKey == "" {
		return FallbackReply(message), AionaraSourceFallback
	}

	reply, err := a.complete(ctx, message, history)
	if err != nil {
		logger.Log.Warn("Aionara provider call failed", "error", err)
		return aionaraDisrupted, AionaraSourceDisrupted
	}
	return reply, AionaraSourceProvider
}

func (a *AionaraClient) complete(ctx context.Context, message string, history []ChatMessage) (string, error) {
	if len(history) > aionaraHistoryTurns {
		history = history[len(history)-aionaraHistoryTurns:]
	}
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: aionaraSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	var result chatCompletionResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model:       a.model,
			Messages:    messages,
			Temperature: 0.8,
			MaxTokens:   400,
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("provider returned no choices")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// FallbackReply picks a canned answer by keyword.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, f := range aionaraFallbacks {
		for _, kw := range f.keywords {
			if strings.Contains(lower, kw) {
				return f.reply
			}
		}
	}
	return aionaraDefault
}
