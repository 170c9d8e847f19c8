// internal/engine/engine.go
package engine

import (
	"context"
	"time"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
)

const defaultFetchTimeout = 10 * time.Second

// Config tunes an Engine. Zero values fall back to the documented defaults,
// so Config{} is a valid production configuration.
type Config struct {
	Weights      Weights
	Thresholds   Thresholds
	FetchTimeout time.Duration

	// Now is injectable for deterministic tests.
	Now func() time.Time
}

// Engine runs the full analysis pipeline: validate, collect, score,
// aggregate, assemble. It is safe for concurrent use.
type Engine struct {
	coordinator *coordinator
	scorers     []CategoryScorer
	weights     Weights
	now         func() time.Time
	logger      logger.Logger
}

// New builds an Engine over the given source. The weight-sum invariant is
// checked here so a misconfigured engine can never produce a verdict.
func New(cfg Config, source Source, log logger.Logger) (*Engine, error) {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Engine{
		coordinator: &coordinator{source: source, timeout: cfg.FetchTimeout, logger: log},
		scorers:     scorers(cfg.Thresholds),
		weights:     cfg.Weights,
		now:         cfg.Now,
		logger:      log,
	}, nil
}

// Analyze produces the immutable risk verdict for one company query.
func (e *Engine) Analyze(ctx context.Context, query CompanyQuery) (*Analysis, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	query = query.Normalize()

	findings, err := e.coordinator.collect(ctx, query)
	if err != nil {
		return nil, err
	}

	scores := make(map[Category]float64, len(e.scorers))
	var allFlags []Flag
	for _, scorer := range e.scorers {
		score, flags := scorer.Score(findings)
		if score < 0.0 || score > 1.0 {
			return nil, errors.NewScoreContractViolationError(string(scorer.Category()), score)
		}
		scores[scorer.Category()] = score
		allFlags = append(allFlags, flags...)
	}

	overall := aggregate(scores, e.weights)
	level := RiskLevelFor(overall)
	red, green := splitFlags(allFlags)
	unavailable := findings.Unavailable()

	analysis := &Analysis{
		CompanyName:           query.CompanyName,
		Domain:                query.Domain,
		Jurisdiction:          query.Jurisdiction,
		CategoryScores:        scores,
		OverallRiskScore:      overall,
		RiskLevel:             level,
		RedFlags:              red,
		GreenFlags:            green,
		Recommendations:       buildRecommendations(level, red),
		DataComplete:          len(unavailable) == 0,
		UnavailableCategories: unavailable,
		AnalysisDate:          e.now().UTC(),
	}

	e.logger.Info("Company analysis completed", map[string]interface{}{
		"company":    analysis.CompanyName,
		"risk_score": analysis.OverallRiskScore,
		"risk_level": string(analysis.RiskLevel),
		"red_flags":  len(analysis.RedFlags),
	})

	return analysis, nil
}
