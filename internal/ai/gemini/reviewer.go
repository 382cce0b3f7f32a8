package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/ai"
	"github.com/spigell/ats-checker/internal/logger"
	"github.com/spigell/ats-checker/internal/textutil"
)

const (
	defaultMaxLogLength = 200
	maxInstructionRunes = 500
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Reviewer asks Gemini for a recruiter-style review of an analyzed résumé.
type Reviewer struct {
	generator    contentGenerator
	logger       *zap.Logger
	maxLogLen    int
	instructions string
}

type reviewPayload struct {
	Summary     string   `mapstructure:"summary"`
	Suggestions []string `mapstructure:"suggestions"`
	Score       float64  `mapstructure:"score"`
}

func NewReviewer(generator contentGenerator, log *zap.Logger, maxLogLength int, instructions string) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator:    generator,
		logger:       logger.WithAIFields(log, "gemini", generator.Model()),
		maxLogLen:    maxLogLength,
		instructions: instructions,
	}
}

func (r *Reviewer) Review(ctx context.Context, req ai.ReviewRequest) (*ai.Review, error) {
	if strings.TrimSpace(req.Resume) == "" {
		return nil, errors.New("resume text is required")
	}

	analysisJSON, err := json.MarshalIndent(req.Result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}

	system := buildSystemPrompt(r.instructions)
	message := buildMessage(string(analysisJSON), req.Resume, req.JobDescription)

	r.logger.Debug("gemini review request",
		zap.Int("prompt_length", utf8.RuneCountInString(system)+utf8.RuneCountInString(message)),
		zap.String("message_preview", textutil.TruncateForLog(message, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", textutil.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	review.Raw = raw
	return review, nil
}

func buildSystemPrompt(instructions string) string {
	return strings.ReplaceAll(promptTemplate, "{{INSTRUCTIONS}}", sanitizeInstructions(instructions))
}

func buildMessage(analysisJSON, resume, job string) string {
	job = strings.TrimSpace(job)
	if job == "" {
		job = "none"
	}

	var b strings.Builder
	b.WriteString("[Inputs: ATS analysis]\n")
	b.WriteString(analysisJSON)
	b.WriteString("\n\n[Inputs: Résumé]\n")
	b.WriteString(strings.TrimSpace(resume))
	b.WriteString("\n\n[Inputs: Job description]\n")
	b.WriteString(job)
	return b.String()
}

// sanitizeInstructions renders user instructions as a bullet list that cannot
// open a new prompt section.
func sanitizeInstructions(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "  - none"
	}

	if runes := []rune(input); len(runes) > maxInstructionRunes {
		input = string(runes[:maxInstructionRunes])
	}

	replacer := strings.NewReplacer("[", "(", "]", ")", "{{", "(", "}}", ")")

	lines := make([]string, 0)
	for line := range strings.SplitSeq(input, "\n") {
		line = strings.Join(strings.Fields(replacer.Replace(line)), " ")
		if line == "" {
			continue
		}
		lines = append(lines, "  - "+line)
	}

	return strings.Join(lines, "\n")
}

func parseResponse(raw string) (*ai.Review, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var payload reviewPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	review := &ai.Review{
		Summary:     strings.TrimSpace(payload.Summary),
		Suggestions: make([]string, 0, len(payload.Suggestions)),
		Score:       clampScore(payload.Score),
	}
	for _, s := range payload.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			review.Suggestions = append(review.Suggestions, s)
		}
	}

	if review.Summary == "" && len(review.Suggestions) == 0 {
		return nil, errors.New("gemini response has no review content")
	}

	return review, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}
