package ai_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	openai "github.com/sashabaranov/go-openai"

	"github.com/frahmantamala/grievance-management/internal/ai"
)

func TestAI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AI Module Suite")
}

// Mock completer for testing
type mockCompleter struct {
	response string
	err      error
	lastReq  openai.ChatCompletionRequest
}

func (m *mockCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: m.response}},
		},
	}, nil
}

var _ = Describe("Analyzer", func() {
	var (
		completer *mockCompleter
		analyzer  *ai.Analyzer
	)

	BeforeEach(func() {
		completer = &mockCompleter{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		analyzer = ai.NewAnalyzer(completer, "test-model", 5*time.Second, logger)
	})

	Describe("AnalyzeGrievance", func() {
		It("should parse category and priority lines from the response", func() {
			completer.response = `Title: Refined title
Description: Improved description
Category: Healthcare & Medical Services
Priority: High - Needs immediate investigation
Rationale:
- because`

			analysis, err := analyzer.AnalyzeGrievance(context.Background(), "t", "d", 2)

			Expect(err).ToNot(HaveOccurred())
			Expect(analysis.Category).ToNot(BeNil())
			Expect(*analysis.Category).To(Equal("Healthcare & Medical Services"))
			Expect(analysis.Priority).ToNot(BeNil())
			Expect(*analysis.Priority).To(Equal("High - Needs immediate investigation"))
			Expect(analysis.Text).To(Equal(completer.response))
		})

		It("should leave category and priority nil when the lines are absent", func() {
			completer.response = "Some free-form answer without the structured lines"

			analysis, err := analyzer.AnalyzeGrievance(context.Background(), "t", "d", 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(analysis.Category).To(BeNil())
			Expect(analysis.Priority).To(BeNil())
		})

		It("should include the grievance details and enumerations in the prompt", func() {
			completer.response = "ok"

			_, err := analyzer.AnalyzeGrievance(context.Background(), "Broken light", "Dark street", 3)

			Expect(err).ToNot(HaveOccurred())
			Expect(completer.lastReq.Messages).To(HaveLen(1))
			prompt := completer.lastReq.Messages[0].Content
			Expect(prompt).To(ContainSubstring("Broken light"))
			Expect(prompt).To(ContainSubstring("Dark street"))
			Expect(prompt).To(ContainSubstring("3 file(s)"))
			Expect(prompt).To(ContainSubstring("Public Infrastructure & Utilities"))
			Expect(prompt).To(ContainSubstring("Critical - Urgent action required"))
		})

		It("should propagate upstream failures", func() {
			completer.err = errors.New("rate limited")

			_, err := analyzer.AnalyzeGrievance(context.Background(), "t", "d", 0)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Insights", func() {
		It("should derive a summary and recommendation from the analysis", func() {
			completer.response = `Summary of the issue
Priority: Critical - Urgent action required`

			summary, recommendation, err := analyzer.Insights(context.Background(), "t", "d", "Other")

			Expect(err).ToNot(HaveOccurred())
			Expect(summary).To(ContainSubstring("Summary of the issue"))
			Expect(recommendation).To(ContainSubstring("Critical - Urgent action required"))
		})

		It("should fail when the completion fails", func() {
			completer.err = errors.New("timeout")

			_, _, err := analyzer.Insights(context.Background(), "t", "d", "Other")

			Expect(err).To(HaveOccurred())
		})
	})
})
