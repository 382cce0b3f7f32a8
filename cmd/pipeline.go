package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/ai"
	"github.com/spigell/ats-checker/internal/ai/gemini"
	"github.com/spigell/ats-checker/internal/analysis"
	"github.com/spigell/ats-checker/internal/document"
	"github.com/spigell/ats-checker/internal/logger"
	"github.com/spigell/ats-checker/internal/report"
	"github.com/spigell/ats-checker/internal/secrets"
)

var (
	now         = time.Now
	newReviewer = newGeminiReviewer
)

// session is a finished analysis ready to be presented.
type session struct {
	input    analysis.Input
	result   analysis.Result
	statuses []analysis.Status
	meta     report.Meta
	format   string
}

func analyze(ctx context.Context, config *Config, opts analyzeOptions, log *zap.Logger, stdout io.Writer) error {
	cfg, err := config.analysisConfig()
	if err != nil {
		return err
	}

	format := report.FormatText
	if config.Report != nil && config.Report.Format != "" {
		format = config.Report.Format
	}
	if err := report.ValidateFormat(format); err != nil {
		return err
	}

	in, err := loadInput(opts, log)
	if err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(cfg, log)
	statuses := analyzer.Describe(in)
	for _, s := range statuses {
		log.Debug("analysis step",
			zap.String("name", s.Name),
			zap.Bool("enabled", s.Enabled),
			zap.String("reason", s.Reason),
		)
	}

	res := analyzer.Analyze(in.Resume, in.JobDescription)
	log.Info("analysis completed",
		zap.Int("overall_score", res.Overall),
		zap.Int("ats_breaking_elements", len(res.Breakers)),
		zap.Int("recommendations", len(res.Recommendations)),
	)

	s := &session{
		input:    in,
		result:   res,
		statuses: statuses,
		meta:     report.Meta{GeneratedAt: now()},
		format:   format,
	}

	if config.AI != nil && config.AI.Enabled {
		review, err := requestReview(ctx, config.AI, s, log)
		if err != nil {
			log.Warn("skipping AI review", zap.Error(err))
		} else {
			s.meta.Review = review
		}
	}

	if opts.Interactive {
		return interactive(s, log, stdout)
	}

	return writeReport(s, opts.Output, log, stdout)
}

func loadInput(opts analyzeOptions, log *zap.Logger) (analysis.Input, error) {
	var in analysis.Input

	if strings.TrimSpace(opts.Resume) == "" {
		return in, errors.New("resume path is required")
	}

	resume, err := document.Load(opts.Resume)
	if err != nil {
		return in, fmt.Errorf("loading resume: %w", err)
	}
	log.Info("resume loaded", logger.DocumentFields(resume.Name, string(resume.Format), resume.Chars())...)
	in.Resume = resume.Text

	if strings.TrimSpace(opts.Job) == "" {
		return in, nil
	}

	job, err := document.Load(opts.Job)
	switch {
	case errors.Is(err, document.ErrEmptyDocument):
		log.Warn("job description is empty, scoring without it", zap.String("document", opts.Job))
		return in, nil
	case err != nil:
		return in, fmt.Errorf("loading job description: %w", err)
	}
	log.Info("job description loaded", logger.DocumentFields(job.Name, string(job.Format), job.Chars())...)
	in.JobDescription = job.Text

	return in, nil
}

func requestReview(ctx context.Context, cfg *AIConfig, s *session, log *zap.Logger) (*ai.Review, error) {
	reviewer, err := newReviewer(ctx, cfg, log.Named("ai"))
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	return reviewer.Review(ctx, ai.ReviewRequest{
		Resume:         s.input.Resume,
		JobDescription: s.input.JobDescription,
		Result:         s.result,
	})
}

func newGeminiReviewer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Reviewer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("ai.gemini section is required")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(generator, log, cfg.Gemini.MaxLogLength, cfg.Instructions), nil
}

func writeReport(s *session, path string, log *zap.Logger, stdout io.Writer) error {
	if path == "" {
		return report.Write(stdout, s.format, s.result, s.meta)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if err := report.Write(f, s.format, s.result, s.meta); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}

	log.Info("report saved", zap.String("filename", path), zap.String("format", s.format))
	return nil
}

func interactive(s *session, log *zap.Logger, stdout io.Writer) error {
	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(action, s, log, stdout); err != nil {
			return err
		}
	}
}

func handleAction(action string, s *session, log *zap.Logger, stdout io.Writer) error {
	switch action {
	case PromptShowReport:
		return report.WriteText(stdout, s.result, s.meta)
	case PromptShowRecommendations:
		for i, r := range s.result.Recommendations {
			fmt.Fprintf(stdout, "%d. [%s] %s\n", i+1, strings.ToUpper(string(r.Priority)), r.Text)
		}
		return nil
	case PromptShowSteps:
		for _, st := range s.statuses {
			line := fmt.Sprintf("%-14s enabled=%t", st.Name, st.Enabled)
			if st.Reason != "" {
				line += " reason=" + st.Reason
			}
			fmt.Fprintln(stdout, line)
		}
		return nil
	case PromptShowJSON:
		return report.WriteJSON(stdout, s.result, s.meta)
	case PromptSaveReport:
		return writeReport(s, filepath.Join(".", report.FileName(s.format, s.meta.GeneratedAt)), log, stdout)
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
