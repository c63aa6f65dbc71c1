package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"stamina-backend/internal/models"
	"stamina-backend/internal/pipeline"
)

// GenerationService submits composed prompts to the model provider and
// turns the structured response into a validated card list. One outbound
// call per invocation; no client-side retries.
type GenerationService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // Token bucket
}

func NewGenerationService(apiKey, modelName string, concurrentReqs int) (*GenerationService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SetTopP(0.95)
	model.ResponseMIMEType = "application/json"

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GenerationService{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (s *GenerationService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GenerationService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for generation rate slot")
	}
}

func (s *GenerationService) releaseRate() {
	s.rateChan <- struct{}{}
}

// GenerateCards runs one generation attempt for the composed prompt and
// returns the validated, quiz-last card list.
func (s *GenerationService) GenerateCards(ctx context.Context, spec pipeline.PromptSpec) ([]models.Card, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	resp, err := s.model.GenerateContent(ctx, genai.Text(spec.Instruction+"\n"+spec.Source))
	if err != nil {
		log.Printf("generation provider error: %v", err)
		return nil, ErrGeneration
	}

	rawText := extractText(resp)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")
	rawText = strings.TrimSpace(rawText)

	cards, shape := decodeCards(rawText)
	if shape == shapeUnrecognized {
		log.Printf("generation response unrecognized (%d chars): %.200s", len(rawText), rawText)
		return nil, ErrGeneration
	}

	valid, err := sanitizeCards(cards, spec.TargetDifficulty)
	if err != nil {
		log.Printf("generation response failed validation: %v", err)
		return nil, ErrGeneration
	}

	return valid, nil
}

// cardShape is the resolved shape of the provider's JSON payload.
// Providers sometimes wrap the array, sometimes return it bare.
type cardShape int

const (
	shapeWrappedCards cardShape = iota
	shapeBareArray
	shapeUnrecognized
)

// decodeCards resolves the response shape with one explicit match:
// an object carrying a "cards" array, a bare top-level array, or
// unrecognized (which yields an empty list).
func decodeCards(raw string) ([]models.Card, cardShape) {
	var wrapped struct {
		Cards []models.Card `json:"cards"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && wrapped.Cards != nil {
		return wrapped.Cards, shapeWrappedCards
	}

	var bare []models.Card
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return bare, shapeBareArray
	}

	return nil, shapeUnrecognized
}

// sanitizeCards repairs what it can and drops what it cannot: missing ids
// and categories are filled in, out-of-range difficulties fall back to the
// target, quiz cards with an invalid answer index are dropped, and the one
// surviving quiz card is moved to the end. A deck with no concept cards or
// no valid quiz card fails the attempt.
func sanitizeCards(cards []models.Card, targetDifficulty string) ([]models.Card, error) {
	var concepts []models.Card
	var quiz *models.Card

	for _, c := range cards {
		c.Hook = strings.TrimSpace(c.Hook)
		c.Meat = strings.TrimSpace(c.Meat)
		c.Simplified = strings.TrimSpace(c.Simplified)
		c.Category = strings.TrimSpace(c.Category)

		if !models.ValidDifficulty(c.Difficulty) {
			c.Difficulty = targetDifficulty
		}

		if c.IsQuiz {
			if c.QuizQuestion == "" || len(c.QuizOptions) < 2 ||
				c.QuizAnswer < 0 || c.QuizAnswer >= len(c.QuizOptions) {
				continue
			}
			if quiz == nil {
				if c.Category == "" {
					c.Category = "Quiz"
				}
				q := c
				quiz = &q
			}
			continue
		}

		if c.Hook == "" && c.Meat == "" {
			continue
		}
		if c.Category == "" {
			c.Category = "General"
		}
		concepts = append(concepts, c)
	}

	if len(concepts) == 0 {
		return nil, fmt.Errorf("no usable concept cards in response")
	}
	if quiz == nil {
		return nil, fmt.Errorf("no valid quiz card in response")
	}

	result := append(concepts, *quiz)
	for i := range result {
		if result[i].ID == "" {
			result[i].ID = fmt.Sprintf("card-%d", i+1)
		}
	}

	return result, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
