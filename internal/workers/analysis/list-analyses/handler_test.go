// internal/workers/analysis/list-analyses/handler_test.go
package listanalyses

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/engine"
	"fraudscan-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewTestLogger(t)
	handler := NewHandler(&Config{Timeout: 5 * time.Second}, store.NewAnalysisStore(db, log), log)
	return handler, mock
}

func storedPayload(t *testing.T, id, company string, level engine.RiskLevel) []byte {
	t.Helper()
	payload, err := json.Marshal(store.StoredAnalysis{
		ID: id,
		Analysis: engine.Analysis{
			CompanyName:  company,
			Jurisdiction: "US",
			RiskLevel:    level,
			AnalysisDate: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	return payload
}

func TestExecuteListsWithFilter(t *testing.T) {
	handler, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow(storedPayload(t, "a1", "Quantum Wealth Builders", engine.RiskCritical)).
		AddRow(storedPayload(t, "a2", "Quantum Holdings", engine.RiskCritical))

	mock.ExpectQuery(`SELECT payload FROM company_analyses WHERE risk_level = \$1 ORDER BY analysis_date DESC LIMIT \$2`).
		WithArgs("critical", 25).
		WillReturnRows(rows)

	output, err := handler.Execute(context.Background(), &Input{RiskLevel: "critical", Limit: 25})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Count)
	require.Len(t, output.Analyses, 2)
	assert.Equal(t, "a1", output.Analyses[0].ID)
	assert.Equal(t, engine.RiskCritical, output.Analyses[0].RiskLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteEmptyFilterUsesDefaults(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT payload FROM company_analyses ORDER BY analysis_date DESC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	output, err := handler.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, output.Count)
	assert.Empty(t, output.Analyses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRejectsUnknownRiskLevel(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{RiskLevel: "apocalyptic"})
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInvalidFilterFormat, stdErr.Code)
}
