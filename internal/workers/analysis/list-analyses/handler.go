// internal/workers/analysis/list-analyses/handler.go
package listanalyses

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/common/metrics"
	"fraudscan-workers/internal/store"
)

const (
	TaskType = "list-analyses"
)

type Handler struct {
	config *Config
	store  *store.AnalysisStore
	logger logger.Logger
}

func NewHandler(config *Config, st *store.AnalysisStore, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  st,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := "LIST_ANALYSES_FAILED"
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
		h.failJob(client, job, errorCode, message)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}

	results, err := h.store.List(ctx, store.ListFilter{
		RiskLevel:   input.RiskLevel,
		CompanyName: input.CompanyName,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &Output{
		Analyses: results,
		Count:    len(results),
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
