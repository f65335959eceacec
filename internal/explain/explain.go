// Package explain generates an optional natural-language justification for
// an accepted match. It runs after resolution and never affects scoring or
// acceptance; failures degrade to a warning.
package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ppiankov/gazetteer/internal/model"
)

// Explainer wraps the configured LLM provider. A nil Explainer is valid and
// means the feature is disabled.
type Explainer struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	maxTokens int
}

// New creates an explainer from configuration. An empty provider returns
// (nil, nil): disabled, not an error.
func New(cfg model.LLMConfig) (*Explainer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil
	case "openai":
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}
	llmModel := cfg.Model
	if llmModel == "" {
		llmModel = openai.GPT4oMini
	}

	return &Explainer{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     llmModel,
		timeout:   timeout,
		maxTokens: maxTokens,
	}, nil
}

// Explain produces a short justification for why the candidate was accepted
// for the query, grounded in the score breakdown.
func (e *Explainer) Explain(ctx context.Context, query model.PlaceQuery, result model.MatchResult) (string, error) {
	if !result.Matched || result.Candidate == nil || result.Score == nil {
		return "", fmt.Errorf("nothing to explain: result is not a match")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := buildPrompt(query, *result.Candidate, *result.Score)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You explain place-matching decisions. Use only the " +
					"provided scores and facts; do not speculate beyond them.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   e.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(query model.PlaceQuery, candidate model.CandidateEntry, breakdown model.ScoreBreakdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q", query.Name)
	if query.Address != "" {
		fmt.Fprintf(&b, ", address %q", query.Address)
	}
	if query.Coordinate != nil {
		fmt.Fprintf(&b, ", at %s", query.Coordinate)
	}
	fmt.Fprintf(&b, "\nMatched entry: %q (%s edition)\n", candidate.Title, candidate.Language)
	fmt.Fprintf(&b, "Scores: semantic %.2f, geographic %.2f, type %.2f, total %.2f (threshold %.2f)\n",
		breakdown.Semantic, breakdown.Geographic, breakdown.Type,
		breakdown.Total, breakdown.ConfidenceThreshold)
	b.WriteString("In two or three sentences, explain why this entry was accepted as the match.")
	return b.String()
}
