package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/frahmantamala/grievance-management/internal/grievance"
)

// Completer is the slice of the OpenAI client the analyzer needs.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analysis is the structured result of analyzing a grievance. Category and
// Priority are nil when the model response does not carry the expected lines.
type Analysis struct {
	Text     string  `json:"text"`
	Category *string `json:"category"`
	Priority *string `json:"priority"`
}

type Analyzer struct {
	client  Completer
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewAnalyzer(client Completer, model string, timeout time.Duration, logger *slog.Logger) *Analyzer {
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// AnalyzeGrievance asks the model for a structured assessment of the
// grievance and parses the category and priority suggestions out of it.
func (a *Analyzer) AnalyzeGrievance(ctx context.Context, title, description string, attachmentCount int) (*Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := buildPrompt(title, description, attachmentCount)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		a.logger.Error("ai completion failed", "error", err)
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ai completion returned no choices")
	}

	text := resp.Choices[0].Message.Content
	category, priority := parseSuggestions(text)

	return &Analysis{
		Text:     text,
		Category: category,
		Priority: priority,
	}, nil
}

// Insights produces a short summary and recommendation for a newly filed
// grievance. It reuses the full analysis and condenses it.
func (a *Analyzer) Insights(ctx context.Context, title, description, category string) (string, string, error) {
	analysis, err := a.AnalyzeGrievance(ctx, title, description, 0)
	if err != nil {
		return "", "", err
	}

	summary := analysis.Text
	if len(summary) > 500 {
		summary = summary[:500]
	}

	recommendation := "Review the full analysis for suggested next steps."
	if analysis.Priority != nil {
		recommendation = fmt.Sprintf("Suggested priority: %s", *analysis.Priority)
	}

	return summary, recommendation, nil
}

func buildPrompt(title, description string, attachmentCount int) string {
	if title == "" {
		title = "N/A"
	}
	if description == "" {
		description = "N/A"
	}

	return fmt.Sprintf(`Analyze this grievance and provide structured recommendations:

Grievance Details:
- Title: %s
- Description: %s
- Attachments: %d file(s)

Available Categories: %s
Available Priority Levels: %s

Instructions:
1. Carefully review the grievance description
2. Select the MOST APPROPRIATE category from the provided list
3. Determine the MOST SUITABLE priority level based on the grievance's urgency and impact
4. Provide a clear rationale for your category and priority selection

Please provide recommendations in the following structured format:
Title: [Refined Title]
Description: [Improved Description (limited to 500 words)]
Category: [Selected Category]
Priority: [Selected Priority Level]
Rationale:
- Why this category was chosen
- Why this priority level was selected

Key Observations:
1. [Observation 1]
2. [Observation 2]
3. [Observation 3]

Recommendations should be concise, clear, and directly actionable.`,
		title,
		description,
		attachmentCount,
		strings.Join(grievance.Categories, ", "),
		strings.Join(grievance.Priorities, ", "))
}

// parseSuggestions scans the response for "Category:" and "Priority:" lines.
// Either may be absent; callers must handle nil.
func parseSuggestions(text string) (category, priority *string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "Category:"); ok && category == nil {
			v = strings.TrimSpace(v)
			if v != "" {
				category = &v
			}
		}
		if v, ok := strings.CutPrefix(line, "Priority:"); ok && priority == nil {
			v = strings.TrimSpace(v)
			if v != "" {
				priority = &v
			}
		}
	}
	return category, priority
}
