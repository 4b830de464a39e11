package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/theautotimes/newsdesk/app/catalog"
)

// Canned responses for every failure mode. The assistant degrades, it
// never surfaces an error to the caller.
const (
	ReplyMissingKey  = "I cannot access the news archives at this moment. (Missing API Key)"
	ReplyUnavailable = "Our archives are currently undergoing maintenance. Please check back later."
	ReplyNoComment   = "The editorial board is unable to comment at this time."
)

const requestTimeout = 30 * time.Second

// Message is one turn of conversation history. Role is "user" or
// "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Assistant wraps the generative-text service in the Executive Editor
// persona, with the current news wire embedded in the system
// instruction.
type Assistant struct {
	apiKey   string
	model    string
	articles []catalog.Article
}

func NewAssistant(apiKey, model string, articles []catalog.Article) *Assistant {
	if apiKey == "" {
		slog.Warn("Chat assistant running without an API key, replies will be canned")
	}
	return &Assistant{
		apiKey:   apiKey,
		model:    model,
		articles: articles,
	}
}

// Reply answers a user message given prior conversation history. It
// always returns a displayable string.
func (a *Assistant) Reply(ctx context.Context, history []Message, message string) string {
	if a.apiKey == "" {
		return ReplyMissingKey
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: a.apiKey,
	})
	if err != nil {
		slog.Error("Failed to create generative client", "error", err)
		return ReplyUnavailable
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == "model" || m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(a.SystemInstruction(), genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		slog.Error("Generative request failed", "model", a.model, "error", err)
		return ReplyUnavailable
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return ReplyNoComment
	}

	return text
}

// SystemInstruction builds the Executive Editor persona prompt with a
// snapshot of the current wire.
func (a *Assistant) SystemInstruction() string {
	var wire strings.Builder
	for _, p := range a.articles {
		wire.WriteString(fmt.Sprintf("- %q (%s). Section: %s. Lead: %s\n",
			p.Title, p.PublicationDate, p.Category, p.AbstractPreview))
	}

	return fmt.Sprintf(`You are the Executive Editor for "The Auto Times", a prestigious automotive newspaper.
Your tone is expert, passionate, and precise (like a mix of Top Gear and Car & Driver).

Here is our current news wire:
%s
Answer user questions about these stories, car specs, or industry trends.
If asked about cars not in the wire, provide general automotive knowledge but mention you are checking the archives.
Keep answers brief (under 3-4 sentences) and professional.`, wire.String())
}
