package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crime-analytics-api/config"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const assistantApology = "Sorry, I encountered an error. Please try again."

// AssistantService streams safety tips from the Gemini API. A nil service
// means the credential was absent at startup and the endpoint is disabled.
type AssistantService struct {
	client *genai.Client
	model  string
}

func NewAssistantService(ctx context.Context, cfg config.GeminiConfig) (*AssistantService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client init failed: %w", err)
	}
	return &AssistantService{client: client, model: cfg.Model}, nil
}

// StreamSafetyTips starts a producer goroutine that feeds response chunks
// into a bounded channel. Cancelling ctx (client disconnect) stops the
// producer promptly; a mid-stream API failure degrades to a single apology
// chunk since the response has already begun.
func (s *AssistantService) StreamSafetyTips(ctx context.Context, message string, crimeContext []string) <-chan string {
	out := make(chan string, 8)

	go func() {
		defer close(out)

		model := s.client.GenerativeModel(s.model)
		iter := model.GenerateContentStream(ctx, genai.Text(buildPrompt(message, crimeContext)))
		for {
			resp, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logrus.WithError(err).Error("gemini stream failed")
				select {
				case out <- assistantApology:
				case <-ctx.Done():
				}
				return
			}
			for _, cand := range resp.Candidates {
				if cand.Content == nil {
					continue
				}
				for _, part := range cand.Content.Parts {
					text, ok := part.(genai.Text)
					if !ok {
						continue
					}
					select {
					case out <- string(text):
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}

func (s *AssistantService) Close() error {
	return s.client.Close()
}

func buildPrompt(message string, crimeContext []string) string {
	return fmt.Sprintf(`You are an AI Safety Assistant for a crime analysis app. Your tone is helpful and direct.

**Your Goal:** Provide actionable safety tips that are directly relevant to the user's question AND the crime data provided.

**Conversation Rules:**
1.  **If the user's question is specific** (e.g., "How do I protect my car?"), provide tips that directly answer their question, using the crime context to make your answer more relevant.
2.  **If the user's question is vague or a simple greeting** (e.g., "hi", "help", "assist me"), you MUST respond conversationally. Acknowledge their message, and then provide 2-3 general safety tips based ONLY on the provided crime context.
3.  Your tips MUST be related to the provided crime types. Do not give generic advice.
4.  Keep the entire response concise (under 75 words).
5.  Format tips using Markdown bullet points (e.g., "- Tip one...").

**Crime Context:** The top crime types in this area are: %s.
**User's Question:** "%s"

Generate your response now based on these rules.`, strings.Join(crimeContext, ", "), message)
}
