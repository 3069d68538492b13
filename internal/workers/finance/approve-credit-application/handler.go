package approvecreditapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dealership-workers/internal/common/camunda"
	"dealership-workers/internal/common/config"
	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/common/metrics"
	"dealership-workers/internal/foursquare"
	"dealership-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "finance.approve-credit-application"

type Handler struct {
	config    *Config
	logger    logger.Logger
	camunda   *camunda.Client
	store     *store.Store
	jobWorker worker.JobWorker
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Camunda      *camunda.Client
	Store        *store.Store
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for approve-credit-application: %w", err)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("approve-credit-application requires a store")
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
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing credit application approval", map[string]interface{}{
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

// Execute merges the lender's terms into the pending application. A
// missing monthly payment is derived from amount, APR and term. Unknown
// ids complete with found=false.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ApplicationID <= 0 {
		return nil, errors.NewRecordValidationError("applicationId must be a positive integer")
	}
	if input.ApprovedAmount <= 0 {
		return nil, errors.NewPaymentTermsInvalidError("approvedAmount must be positive")
	}

	monthly := input.MonthlyPaymentApproved
	if monthly == 0 {
		monthly = foursquare.MonthlyPayment(input.ApprovedAmount, input.ApprovedAPR, input.ApprovedTermMonths)
	}

	app, found, err := h.store.ApproveApplication(input.ApplicationID, store.ApprovalTerms{
		ApprovedAmount:         input.ApprovedAmount,
		ApprovedAPR:            input.ApprovedAPR,
		ApprovedTermMonths:     input.ApprovedTermMonths,
		MonthlyPaymentApproved: monthly,
		Stipulations:           input.Stipulations,
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return &Output{
			Success: false,
			Found:   false,
			Message: fmt.Sprintf("Pending application %d not found", input.ApplicationID),
		}, nil
	}

	return &Output{
		Success:     true,
		Found:       true,
		Message:     fmt.Sprintf("Application %d decided: %s", input.ApplicationID, app.Status),
		Application: &app,
	}, nil
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
	return &input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	variables := map[string]interface{}{
		"applicationApproved": output.Success,
		"applicationFound":    output.Found,
		"message":             output.Message,
	}
	if output.Application != nil {
		variables["pendingApplication"] = output.Application
		variables["applicationStatus"] = output.Application.Status
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

	h.logger.Error("Application approval job failed", map[string]interface{}{
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
		Code:      "APPLICATION_APPROVAL_ERROR",
		Message:   "Failed to approve credit application",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now(),
	}
}
