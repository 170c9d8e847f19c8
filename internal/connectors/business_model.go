// internal/connectors/business_model.go
package connectors

import (
	"context"

	"fraudscan-workers/internal/engine"
)

// FetchBusinessModel derives the business-model evidence from the query
// itself; the caller already holds everything this category scores on.
func (s *Set) FetchBusinessModel(ctx context.Context, q engine.CompanyQuery) (engine.BusinessModelFinding, error) {
	if err := ctx.Err(); err != nil {
		return engine.BusinessModelFinding{}, err
	}

	finding := engine.BusinessModelFinding{
		PaymentMethods: q.PaymentMethods,
		Description:    q.Description,
	}
	if q.PromisedReturns != nil {
		finding.PromisedReturns = *q.PromisedReturns
		finding.HasPromisedReturns = true
	}
	return finding, nil
}
