// internal/workers/notification/alert-critical/handler.go
package alertcritical

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/common/metrics"
)

const (
	TaskType = "alert-critical"
)

// snsPublisher and sesSender are satisfied by the AWS client wrappers and by
// test doubles.
type snsPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type sesSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type Handler struct {
	config *Config
	sns    snsPublisher
	ses    sesSender
	logger logger.Logger
}

func NewHandler(config *Config, snsClient snsPublisher, sesClient sesSender, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		sns:    snsClient,
		ses:    sesClient,
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
		errorCode := "NOTIFICATION_SEND_FAILED"
		message := err.Error()

		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			bpmnErr := errors.ConvertToBPMNError(stdErr)
			errorCode = bpmnErr.Code
			message = bpmnErr.Message
		}
		h.failJob(client, job, errorCode, message)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.AnalysisID == "" || input.CompanyName == "" {
		return nil, errors.NewInvalidCompanyQueryError("analysisId and company_name are required")
	}

	subject := fmt.Sprintf("[%s] Fraud risk alert: %s", strings.ToUpper(input.RiskLevel), input.CompanyName)
	body := h.alertBody(input)

	output := &Output{}

	if h.config.SNSEnabled && h.sns != nil {
		result, err := h.sns.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(h.config.TopicARN),
			Subject:  aws.String(subject),
			Message:  aws.String(body),
		})
		if err != nil {
			return nil, errors.NewNotificationSendFailedError("sns", err)
		}
		output.SNSMessageID = aws.ToString(result.MessageId)
	}

	if h.config.SESEnabled && h.ses != nil {
		_, err := h.ses.SendEmail(ctx, &ses.SendEmailInput{
			Source: aws.String(h.config.FromEmail),
			Destination: &sestypes.Destination{
				ToAddresses: []string{h.config.ReportTo},
			},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		})
		if err != nil {
			return nil, errors.NewNotificationSendFailedError("ses", err)
		}
		output.EmailSent = true
	}

	output.Delivered = output.SNSMessageID != "" || output.EmailSent
	if !output.Delivered {
		h.logger.Warn("no notification channel enabled, alert dropped", map[string]interface{}{
			"analysisId": input.AnalysisID,
		})
	}

	return output, nil
}

// alertBody renders the plain-text alert: verdict summary first, then the
// most severe flags.
func (h *Handler) alertBody(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", input.CompanyName)
	fmt.Fprintf(&b, "Risk level: %s (score %.3f)\n", input.RiskLevel, input.OverallRiskScore)
	fmt.Fprintf(&b, "Analysis ID: %s\n", input.AnalysisID)

	if len(input.RedFlags) > 0 {
		b.WriteString("\nRed flags:\n")
		for _, flag := range input.RedFlags {
			fmt.Fprintf(&b, "  - [%s/%s] %s\n", flag.Category, flag.Severity, flag.Message)
		}
	}
	return b.String()
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
