// internal/engine/types_test.go
package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  RiskLevel
	}{
		{name: "zero is low", score: 0.0, want: RiskLow},
		{name: "just under low boundary", score: 0.2999, want: RiskLow},
		{name: "low boundary goes to medium", score: 0.3, want: RiskMedium},
		{name: "medium boundary goes to high", score: 0.6, want: RiskHigh},
		{name: "high boundary goes to critical", score: 0.8, want: RiskCritical},
		{name: "maximum is critical", score: 1.0, want: RiskCritical},
		{name: "mid medium", score: 0.45, want: RiskMedium},
		{name: "mid high", score: 0.7, want: RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevelFor(tt.score))
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := DefaultWeights()
	bad.Financial = 0.30
	assert.Error(t, bad.Validate())
}

func TestDefaultWeightsPerCategory(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 0.15, w.For(CategoryRegistration))
	assert.Equal(t, 0.25, w.For(CategoryFinancial))
	assert.Equal(t, 0.15, w.For(CategoryDomain))
	assert.Equal(t, 0.20, w.For(CategoryRegulatory))
	assert.Equal(t, 0.15, w.For(CategoryReputation))
	assert.Equal(t, 0.10, w.For(CategoryBusinessModel))
}

func TestSeverityJSON(t *testing.T) {
	red := RedFlag(CategoryDomain, SeverityHigh, "No valid SSL certificate found")
	data, err := json.Marshal(red)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"domain","severity":"high","message":"No valid SSL certificate found"}`, string(data))

	// Green flags never serialize a severity.
	green := GreenFlag(CategoryDomain, "Valid SSL certificate")
	data, err = json.Marshal(green)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"domain","message":"Valid SSL certificate"}`, string(data))

	var parsed Flag
	require.NoError(t, json.Unmarshal([]byte(`{"category":"regulatory","severity":"critical","message":"x"}`), &parsed))
	assert.Equal(t, SeverityCritical, parsed.Severity)
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical > SeverityHigh)
	assert.True(t, SeverityHigh > SeverityMedium)
	assert.True(t, SeverityMedium > SeverityLow)
}
