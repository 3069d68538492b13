package sendcommunication

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"dealership-workers/internal/common/camunda"
	"dealership-workers/internal/common/config"
	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/common/metrics"
	"dealership-workers/internal/models"
	"dealership-workers/internal/store"
)

const TaskType = "sales.send-communication"

type Handler struct {
	config    *Config
	logger    logger.Logger
	camunda   *camunda.Client
	store     *store.Store
	ses       EmailSender
	sns       SMSSender
	jobWorker worker.JobWorker
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Camunda      *camunda.Client
	Store        *store.Store
	SES          EmailSender
	SNS          SMSSender
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for send-communication: %w", err)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("send-communication requires a store")
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}

	return &Handler{
		config:  workerConfig,
		logger:  loggerInstance,
		camunda: opts.Camunda,
		store:   opts.Store,
		ses:     opts.SES,
		sns:     opts.SNS,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing outbound communication", map[string]interface{}{
		"jobKey": job.GetKey(),
		"worker": TaskType,
	})

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute delivers the message over the requested channel and, on
// success, appends the entry to the record's communication history.
// The history is never touched when delivery fails.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.RecordID <= 0 {
		return nil, errors.NewRecordValidationError("recordId must be a positive integer")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, errors.NewRecordValidationError("body is required")
	}

	email, phone, err := h.lookupRecipient(input.Collection, input.RecordID)
	if err != nil {
		return nil, err
	}

	channel := strings.ToLower(strings.TrimSpace(input.Channel))
	var recipient string
	switch channel {
	case ChannelEmail:
		if email == "" {
			return nil, errors.NewRecordValidationError(
				fmt.Sprintf("record %d in %q has no email address", input.RecordID, input.Collection))
		}
		recipient = email
		err = h.sendEmail(ctx, email, input.Subject, input.Body)
	case ChannelSMS:
		if phone == "" {
			return nil, errors.NewRecordValidationError(
				fmt.Sprintf("record %d in %q has no phone number", input.RecordID, input.Collection))
		}
		recipient = phone
		err = h.sendSMS(ctx, phone, input.Body)
	default:
		return nil, errors.NewCommunicationChannelError(input.Channel)
	}
	if err != nil {
		return nil, errors.NewCommunicationSendFailedError(channel, err)
	}

	entry := models.CommunicationEntry{
		ID:      uuid.New().String(),
		Channel: channel,
		Subject: input.Subject,
		Body:    input.Body,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}
	h.store.AppendCommunication(input.Collection, input.RecordID, entry)

	return &Output{
		Success:   true,
		Message:   fmt.Sprintf("Sent %s to %s", channel, recipient),
		Channel:   channel,
		Recipient: recipient,
		Entry:     &entry,
	}, nil
}

func (h *Handler) lookupRecipient(collection string, id int) (email, phone string, err error) {
	switch collection {
	case store.CollectionLeads:
		lead, ok := h.store.Lead(id)
		if !ok {
			return "", "", errors.NewRecordNotFoundError(collection, id)
		}
		return lead.Email, lead.Phone, nil
	case store.CollectionCustomers:
		customer, ok := h.store.Customer(id)
		if !ok {
			return "", "", errors.NewRecordNotFoundError(collection, id)
		}
		return customer.Email, customer.Phone, nil
	default:
		return "", "", errors.NewUnknownCollectionError(collection)
	}
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	if h.ses == nil {
		h.logger.Info("SES client not configured, logging email instead", map[string]interface{}{
			"to":      to,
			"subject": subject,
			"worker":  TaskType,
		})
		return nil
	}

	return h.ses.SendPlainEmail(ctx, h.config.FromEmail, to, subject, body)
}

func (h *Handler) sendSMS(ctx context.Context, phone, body string) error {
	if h.sns == nil {
		h.logger.Info("SNS client not configured, logging SMS instead", map[string]interface{}{
			"to":     phone,
			"worker": TaskType,
		})
		return nil
	}

	return h.sns.SendSMS(ctx, phone, body, h.config.SMSSenderID)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, &errors.StandardError{
			Code:      "INPUT_PARSING_FAILED",
			Message:   "Failed to parse job variables",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}
	if input.Collection == "" {
		input.Collection = store.CollectionCustomers
	}
	return &input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	variables := map[string]interface{}{
		"communicationSent": output.Success,
		"message":           output.Message,
		"channel":           output.Channel,
		"recipient":         output.Recipient,
	}
	if output.Entry != nil {
		variables["communicationEntry"] = output.Entry
	}

	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(variables)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(), "error": err.Error(), "worker": TaskType,
		})
		return
	}
	if _, err = request.Send(ctx); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(), "error": err.Error(), "worker": TaskType,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := convertToStandardError(err)
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	h.logger.Error("Communication job failed", map[string]interface{}{
		"jobKey":    job.GetKey(),
		"errorCode": bpmnErr.Code,
		"worker":    TaskType,
	})

	failCmd := client.NewFailJobCommand().
		JobKey(job.GetKey()).
		Retries(int32(bpmnErr.Retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	if _, failErr := failCmd.Send(ctx); failErr != nil {
		h.logger.Error("Failed to send job failure to Camunda", map[string]interface{}{
			"jobKey": job.GetKey(), "error": failErr.Error(), "worker": TaskType,
		})
	}
}

func (h *Handler) Register() error {
	if !h.config.Enabled {
		h.logger.Info("Worker is disabled, skipping registration", map[string]interface{}{
			"worker": TaskType,
		})
		return nil
	}

	h.jobWorker = h.camunda.GetClient().NewJobWorker().
		JobType(TaskType).
		Handler(h.Handle).
		MaxJobsActive(h.config.MaxJobsActive).
		Timeout(h.config.Timeout).
		Name(fmt.Sprintf("%s-worker", TaskType)).
		Open()

	h.logger.Info("Worker registered with Camunda", map[string]interface{}{
		"taskType":      TaskType,
		"maxJobsActive": h.config.MaxJobsActive,
		"timeout":       h.config.Timeout.String(),
	})
	return nil
}

func (h *Handler) Close() {
	if h.jobWorker != nil {
		h.jobWorker.Close()
		h.jobWorker = nil
	}
}

func (h *Handler) GetTaskType() string { return TaskType }

func (h *Handler) IsEnabled() bool { return h.config.Enabled }

func extractErrorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}

func convertToStandardError(err error) *errors.StandardError {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr
	}
	return &errors.StandardError{
		Code:      "COMMUNICATION_ERROR",
		Message:   "Failed to send communication",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now(),
	}
}
