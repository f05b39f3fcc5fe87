package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sigma_app/internal/catalog"
	"sigma_app/platform/config"

	"google.golang.org/genai"
)

const systemPrompt = "당신은 대학 캠퍼스 도우미 SIGMA입니다. 학사 일정, 수강 신청, 시설 이용, 자주 묻는 질문에 대해 한국어로 간결하게 답하세요."

// GeminiResponder answers with a Gemini model.
type GeminiResponder struct {
	client *genai.Client
	model  string
	system string
}

// NewGeminiResponder creates a responder from the assistant config. It fails
// when no API key is configured.
func NewGeminiResponder(ctx context.Context, cfg config.AssistantConfig) (*GeminiResponder, error) {
	if !cfg.IsAssistantEnabled() {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiResponder{client: client, model: cfg.GetGeminiModel(), system: systemPrompt}, nil
}

// Reply sends the whole transcript and returns the model's text.
func (g *GeminiResponder) Reply(ctx context.Context, history []catalog.ChatMessage) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(history), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

func toContents(history []catalog.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Sender == catalog.SenderAI {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

var _ Responder = (*GeminiResponder)(nil)
