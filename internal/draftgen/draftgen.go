// Package draftgen asks an LLM for a quiz draft on a topic. Drafts are
// never saved here; they go through authoring validation like hand-written
// ones.
package draftgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/authoring"
	"github.com/abhisek/quizbox/internal/llm"
)

const (
	DefaultQuestions = 5
	MaxQuestions     = 20
)

// ErrEmptyTopic is returned when no topic is given.
var ErrEmptyTopic = errors.New("topic is required")

const systemPrompt = `You write multiple-choice quizzes.
Every question has exactly four options and exactly one correct option.
Options are short, plausible and distinct. Do not number or letter them.
Return only the requested JSON.`

// Request describes the quiz to generate.
type Request struct {
	Topic     string
	Questions int
}

// Config tunes the generation call.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns settings sized for up to MaxQuestions questions.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.7}
}

// Generator produces drafts from a provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

type draftOutput struct {
	Title     string `json:"title"`
	Questions []struct {
		Text          string   `json:"text"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correctAnswer"`
	} `json:"questions"`
}

// Generate returns a draft for req.Topic with req.Questions questions
// (DefaultQuestions when zero, capped at MaxQuestions).
func (g *Generator) Generate(ctx context.Context, req Request) (authoring.Draft, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return authoring.Draft{}, ErrEmptyTopic
	}
	n := req.Questions
	if n <= 0 {
		n = DefaultQuestions
	}
	n = min(n, MaxQuestions)

	ctx = llm.WithPurpose(ctx, "quiz-draft")
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, n)},
		},
		Schema:      DraftSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return authoring.Draft{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return authoring.Draft{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	d := authoring.Draft{Title: out.Title}
	for _, q := range out.Questions {
		correct := q.CorrectAnswer
		d.Questions = append(d.Questions, authoring.DraftQuestion{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: &correct,
		})
	}
	return d, nil
}

func buildUserMessage(topic string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", n)
	b.WriteString("Vary which option index is correct across questions.")
	return b.String()
}
