package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/report"
)

const refineSystemPrompt = `Sei un assistente che migliora bozze di risposta email.
Riscrivi la bozza mantenendo tono professionale, lingua italiana, saluti e firma.
Rispondi solo con il corpo della bozza migliorata, senza commenti.`

// DraftRefiner polishes suggested drafts with an LLM. It only ever
// rewrites draft bodies; a refiner failure leaves the canned draft in
// place and never fails the run.
type DraftRefiner struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      zerolog.Logger
}

// NewDraftRefiner creates a new refiner from the LLM configuration
func NewDraftRefiner(cfg *config.LLMConfig, logger zerolog.Logger) *DraftRefiner {
	return &DraftRefiner{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger.With().Str("component", "refiner").Logger(),
	}
}

// Refine rewrites the body of every suggested draft in the report. The
// summary draft entries share the same Draft values, so they stay in
// sync automatically.
func (r *DraftRefiner) Refine(ctx context.Context, rep *report.Report) {
	for _, e := range rep.Actions.ToReply {
		if e.SuggestedDraft == nil {
			continue
		}

		body, err := r.refineBody(ctx, e.Subject, e.SuggestedDraft.Body)
		if err != nil {
			r.logger.Warn().Err(err).Str("email_id", e.ID).Msg("Draft refinement failed, keeping canned draft")
			continue
		}
		e.SuggestedDraft.Body = body
	}
}

func (r *DraftRefiner) refineBody(ctx context.Context, subject, body string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: refineSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Oggetto: %s\n\nBozza:\n%s", subject, body)},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	refined := strings.TrimSpace(resp.Choices[0].Message.Content)
	if refined == "" {
		return "", fmt.Errorf("empty completion")
	}

	return refined, nil
}
