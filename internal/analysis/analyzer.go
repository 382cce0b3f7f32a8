package analysis

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Input is the text handed to the extractors.
type Input struct {
	Resume         string
	JobDescription string
}

// HasJobDescription reports whether a non-blank job description was supplied.
func (in Input) HasJobDescription() bool {
	return strings.TrimSpace(in.JobDescription) != ""
}

// signals collects extractor outputs. Every extractor writes exactly one field,
// so extractors can run concurrently.
type signals struct {
	contact      ContactInfo
	sections     Sections
	breakers     []Breaker
	keywords     KeywordMatch
	skills       SkillsGap
	achievements AchievementStats
}

// extractor is a single step of the pipeline.
type extractor struct {
	name     string
	needsJob bool
	run      func(cfg Config, in Input, s *signals)
}

// Status describes an extractor for diagnostics.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

func defaultExtractors() []extractor {
	return []extractor{
		{
			name: "contact_info",
			run: func(_ Config, in Input, s *signals) {
				s.contact = DetectContactInfo(in.Resume)
			},
		},
		{
			name: "sections",
			run: func(_ Config, in Input, s *signals) {
				s.sections = DetectSections(in.Resume)
			},
		},
		{
			name: "ats_breakers",
			run: func(_ Config, in Input, s *signals) {
				s.breakers = DetectBreakers(in.Resume)
			},
		},
		{
			name:     "keywords",
			needsJob: true,
			run: func(cfg Config, in Input, s *signals) {
				s.keywords = MatchKeywords(in.Resume, in.JobDescription, cfg.Limits)
			},
		},
		{
			name:     "skills_gap",
			needsJob: true,
			run: func(cfg Config, in Input, s *signals) {
				s.skills = AnalyzeSkillsGap(in.Resume, in.JobDescription, cfg.Vocabulary, cfg.Matcher)
			},
		},
		{
			name: "achievements",
			run: func(_ Config, in Input, s *signals) {
				s.achievements = AnalyzeAchievements(in.Resume)
			},
		},
	}
}

// Analyzer runs the extraction pipeline and scores its output.
type Analyzer struct {
	cfg        Config
	logger     *zap.Logger
	extractors []extractor
}

// NewAnalyzer creates an Analyzer. A nil logger disables logging.
func NewAnalyzer(cfg Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		cfg:        cfg,
		logger:     logger.Named("analysis"),
		extractors: defaultExtractors(),
	}
}

// Analyze scores the résumé, optionally against a job description. It never
// fails: degenerate input yields a well-formed, low-scoring result.
func (a *Analyzer) Analyze(resume, jobDescription string) Result {
	in := Input{Resume: resume, JobDescription: jobDescription}
	hasJob := in.HasJobDescription()

	var s signals
	var wg sync.WaitGroup
	for _, step := range a.extractors {
		if step.needsJob && !hasJob {
			a.logger.Debug("extractor skipped",
				zap.String("name", step.name),
				zap.String("reason", "no job description"),
			)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			step.run(a.cfg, in, &s)
		}()
	}
	wg.Wait()

	result := Result{
		Breakers:          s.breakers,
		Sections:          s.sections,
		Contact:           s.contact,
		Keywords:          s.keywords,
		SkillsGap:         s.skills,
		Achievements:      s.achievements,
		HasJobDescription: hasJob,
	}

	scores := map[Category]int{
		CategoryFormatting:  ScoreFormatting(s.breakers),
		CategoryContent:     ScoreContent(resume, s.achievements),
		CategoryStructure:   ScoreStructure(s.sections),
		CategoryReadability: ScoreReadability(resume),
	}
	if hasJob {
		scores[CategoryKeywords] = s.keywords.Score
	}

	result.Categories = a.cfg.Weights.Resolve(scores)
	result.Overall = a.cfg.Weights.Aggregate(scores)
	result.Recommendations = Recommend(&result, a.cfg.Limits.MaxRecommendations)

	a.logger.Debug("analysis completed",
		zap.Int("overall_score", result.Overall),
		zap.Int("breakers", len(result.Breakers)),
		zap.Int("recommendations", len(result.Recommendations)),
		zap.Bool("job_description", hasJob),
	)

	return result
}

// Describe returns the status of every extractor for the given input.
func (a *Analyzer) Describe(in Input) []Status {
	hasJob := in.HasJobDescription()
	statuses := make([]Status, 0, len(a.extractors))
	for _, step := range a.extractors {
		status := Status{
			Name:    step.name,
			Enabled: true,
			Details: map[string]string{
				"requires_job_description": strconv.FormatBool(step.needsJob),
			},
		}
		if step.needsJob && !hasJob {
			status.Enabled = false
			status.Reason = "no job description"
		}
		statuses = append(statuses, status)
	}
	return statuses
}
