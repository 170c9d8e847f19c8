// internal/workers/analysis/analyze-company/handler.go
package analyzecompany

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/common/metrics"
	"fraudscan-workers/internal/engine"
	"fraudscan-workers/internal/store"
)

const (
	TaskType = "analyze-company"
)

type Handler struct {
	config  *Config
	engine  *engine.Engine
	store   *store.AnalysisStore
	indexer *store.SearchIndexer
	logger  logger.Logger
}

// NewHandler wires the full pipeline. indexer may be nil when no search
// cluster is deployed; analyses then live in Postgres only.
func NewHandler(config *Config, eng *engine.Engine, st *store.AnalysisStore, indexer *store.SearchIndexer, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		engine:  eng,
		store:   st,
		indexer: indexer,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "ANALYSIS_FAILED"
		message := err.Error()

		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			bpmnErr := errors.ConvertToBPMNError(stdErr)
			errorCode = bpmnErr.Code
			message = bpmnErr.Message
			if bpmnErr.Details != "" {
				message = fmt.Sprintf("%s: %s", bpmnErr.Message, bpmnErr.Details)
			}
		}

		metrics.AnalysesFailed.WithLabelValues(errorCode).Inc()
		h.failJob(client, job, errorCode, message)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if err := validateInput(input); err != nil {
		return nil, errors.NewInvalidCompanyQueryError(err.Error())
	}

	started := time.Now()
	analysis, err := h.engine.Analyze(ctx, input.toQuery())
	if err != nil {
		return nil, err
	}

	stored, err := h.store.Save(ctx, analysis)
	if err != nil {
		return nil, err
	}

	if h.indexer != nil {
		if err := h.indexer.Index(ctx, stored); err != nil {
			return nil, err
		}
	}

	metrics.AnalysesCompleted.WithLabelValues(string(analysis.RiskLevel)).Inc()
	metrics.AnalysisDuration.WithLabelValues(string(analysis.RiskLevel)).Observe(time.Since(started).Seconds())

	return &Output{
		AnalysisID:       stored.ID,
		RiskLevel:        string(analysis.RiskLevel),
		OverallRiskScore: analysis.OverallRiskScore,
		DataComplete:     analysis.DataComplete,
		AlertRequired:    analysis.RiskLevel == engine.RiskCritical,
		Analysis:         stored,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
