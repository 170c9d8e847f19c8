// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/engine"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// StoredAnalysis is a persisted analysis: the engine verdict plus its
// storage identity.
type StoredAnalysis struct {
	ID string `json:"analysis_id"`
	engine.Analysis
}

// ListFilter narrows a listing. Zero values mean "no filter".
type ListFilter struct {
	RiskLevel   string `json:"risk_level,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

func (f ListFilter) validate() error {
	switch f.RiskLevel {
	case "", string(engine.RiskLow), string(engine.RiskMedium), string(engine.RiskHigh), string(engine.RiskCritical):
	default:
		return errors.NewInvalidFilterFormatError(fmt.Sprintf("unknown risk_level %q", f.RiskLevel))
	}
	if f.Limit < 0 {
		return errors.NewInvalidFilterFormatError("limit must not be negative")
	}
	return nil
}

// AnalysisStore persists analyses in Postgres. The full verdict is stored as
// a JSON payload next to the columns listings filter on.
type AnalysisStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAnalysisStore(db *sql.DB, log logger.Logger) *AnalysisStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &AnalysisStore{db: db, logger: log}
}

// Save assigns the analysis an ID and inserts it. The engine verdict itself
// is never modified.
func (s *AnalysisStore) Save(ctx context.Context, analysis *engine.Analysis) (*StoredAnalysis, error) {
	stored := &StoredAnalysis{
		ID:       uuid.New().String(),
		Analysis: *analysis,
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.NewAnalysisStoreFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO company_analyses
			(id, company_name, domain, jurisdiction, overall_risk_score, risk_level, data_complete, payload, analysis_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		stored.ID,
		stored.CompanyName,
		stored.Domain,
		stored.Jurisdiction,
		stored.OverallRiskScore,
		string(stored.RiskLevel),
		stored.DataComplete,
		payload,
		stored.AnalysisDate,
	)
	if err != nil {
		return nil, errors.NewAnalysisStoreFailedError(err)
	}

	s.logger.Info("Analysis stored", map[string]interface{}{
		"analysis_id": stored.ID,
		"company":     stored.CompanyName,
		"risk_level":  string(stored.RiskLevel),
	})
	return stored, nil
}

// GetByID loads one stored analysis.
func (s *AnalysisStore) GetByID(ctx context.Context, id string) (*StoredAnalysis, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM company_analyses WHERE id = $1`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.NewAnalysisNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewAnalysisStoreFailedError(err)
	}

	var stored StoredAnalysis
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, errors.NewAnalysisStoreFailedError(err)
	}
	return &stored, nil
}

// List returns stored analyses matching the filter, newest first.
func (s *AnalysisStore) List(ctx context.Context, filter ListFilter) ([]StoredAnalysis, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := strings.Builder{}
	query.WriteString(`SELECT payload FROM company_analyses`)
	var (
		conditions []string
		args       []interface{}
	)
	if filter.RiskLevel != "" {
		args = append(args, filter.RiskLevel)
		conditions = append(conditions, fmt.Sprintf("risk_level = $%d", len(args)))
	}
	if filter.CompanyName != "" {
		args = append(args, "%"+filter.CompanyName+"%")
		conditions = append(conditions, fmt.Sprintf("company_name ILIKE $%d", len(args)))
	}
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	args = append(args, limit)
	query.WriteString(fmt.Sprintf(" ORDER BY analysis_date DESC LIMIT $%d", len(args)))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, errors.NewAnalysisStoreFailedError(err)
	}
	defer rows.Close()

	results := []StoredAnalysis{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewAnalysisStoreFailedError(err)
		}
		var stored StoredAnalysis
		if err := json.Unmarshal(payload, &stored); err != nil {
			return nil, errors.NewAnalysisStoreFailedError(err)
		}
		results = append(results, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAnalysisStoreFailedError(err)
	}
	return results, nil
}

// Schema documents the table this store expects; migrations live with the
// deployment, not the binary.
const Schema = `
CREATE TABLE IF NOT EXISTS company_analyses (
	id                 UUID PRIMARY KEY,
	company_name       TEXT NOT NULL,
	domain             TEXT NOT NULL DEFAULT '',
	jurisdiction       TEXT NOT NULL DEFAULT 'US',
	overall_risk_score NUMERIC(4,3) NOT NULL,
	risk_level         TEXT NOT NULL,
	data_complete      BOOLEAN NOT NULL,
	payload            JSONB NOT NULL,
	analysis_date      TIMESTAMPTZ NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_company_analyses_risk_level ON company_analyses (risk_level);
CREATE INDEX IF NOT EXISTS idx_company_analyses_company_name ON company_analyses (company_name);
`
