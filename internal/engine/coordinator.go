// internal/engine/coordinator.go
package engine

import (
	"context"
	"sync"
	"time"

	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/common/metrics"
)

// Source provides the raw per-category evidence. Implementations are expected
// to honor context cancellation; the coordinator enforces a per-category
// timeout on top of whatever deadline the caller carries.
type Source interface {
	FetchRegistration(ctx context.Context, q CompanyQuery) (RegistrationFinding, error)
	FetchFinancial(ctx context.Context, q CompanyQuery) (FinancialFinding, error)
	FetchDomain(ctx context.Context, q CompanyQuery) (DomainFinding, error)
	FetchRegulatory(ctx context.Context, q CompanyQuery) (RegulatoryFinding, error)
	FetchReputation(ctx context.Context, q CompanyQuery) (ReputationFinding, error)
	FetchBusinessModel(ctx context.Context, q CompanyQuery) (BusinessModelFinding, error)
}

// coordinator fans the six category fetches out in parallel. A failed or
// timed-out fetch marks its category unavailable and never fails the run;
// only cancellation of the parent context aborts the whole collection.
type coordinator struct {
	source  Source
	timeout time.Duration
	logger  logger.Logger
}

func (c *coordinator) collect(ctx context.Context, q CompanyQuery) (*Findings, error) {
	findings := &Findings{}

	var wg sync.WaitGroup
	run := func(category Category, fetch func(context.Context) error, markUnavailable func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			start := time.Now()
			err := fetch(fetchCtx)
			elapsed := time.Since(start)

			if err != nil {
				markUnavailable()
				metrics.CategoryFetchFailures.WithLabelValues(string(category)).Inc()
				metrics.SourceFetchDuration.WithLabelValues(string(category), "error").Observe(elapsed.Seconds())
				c.logger.WithError(err).Warn("Category fetch failed, scoring neutral", map[string]interface{}{
					"category": string(category),
					"company":  q.CompanyName,
				})
				return
			}
			metrics.SourceFetchDuration.WithLabelValues(string(category), "ok").Observe(elapsed.Seconds())
		}()
	}

	// Each goroutine writes a distinct Findings field; the WaitGroup
	// publishes the writes to the caller.
	run(CategoryRegistration, func(ctx context.Context) error {
		f, err := c.source.FetchRegistration(ctx, q)
		findings.Registration = f
		return err
	}, func() { findings.Registration = RegistrationFinding{Unavailable: true} })

	run(CategoryFinancial, func(ctx context.Context) error {
		f, err := c.source.FetchFinancial(ctx, q)
		findings.Financial = f
		return err
	}, func() { findings.Financial = FinancialFinding{Unavailable: true} })

	run(CategoryDomain, func(ctx context.Context) error {
		f, err := c.source.FetchDomain(ctx, q)
		findings.Domain = f
		return err
	}, func() { findings.Domain = DomainFinding{Unavailable: true} })

	run(CategoryRegulatory, func(ctx context.Context) error {
		f, err := c.source.FetchRegulatory(ctx, q)
		findings.Regulatory = f
		return err
	}, func() { findings.Regulatory = RegulatoryFinding{Unavailable: true} })

	run(CategoryReputation, func(ctx context.Context) error {
		f, err := c.source.FetchReputation(ctx, q)
		findings.Reputation = f
		return err
	}, func() { findings.Reputation = ReputationFinding{Unavailable: true} })

	run(CategoryBusinessModel, func(ctx context.Context) error {
		f, err := c.source.FetchBusinessModel(ctx, q)
		findings.BusinessModel = f
		return err
	}, func() { findings.BusinessModel = BusinessModelFinding{Unavailable: true} })

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}
