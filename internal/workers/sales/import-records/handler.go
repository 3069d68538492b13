package importrecords

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealership-workers/internal/common/camunda"
	"dealership-workers/internal/common/config"
	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/common/metrics"
	"dealership-workers/internal/common/validation"
	"dealership-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "sales.import-records"

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
		return nil, fmt.Errorf("invalid configuration for import-records: %w", err)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("import-records requires a store")
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

	h.logger.Info("Processing record import", map[string]interface{}{
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

// Execute parses and validates the payload, then appends the decoded
// records. A parse or schema failure imports nothing.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	payload, err := h.decodePayload(input)
	if err != nil {
		return nil, err
	}

	result, err := validation.ValidateJSON(payload, payloadSchema)
	if err != nil {
		return nil, errors.NewImportParseFailedError(input.Format, err)
	}
	if !result.Valid {
		return nil, errors.NewImportSchemaViolationError(
			strings.Join(result.GetErrorMessages(), "; "))
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, errors.NewImportParseFailedError(input.Format, err)
	}
	if len(batch) > h.config.MaxRecords {
		return nil, errors.NewImportSchemaViolationError(
			fmt.Sprintf("batch of %d exceeds the %d record limit", len(batch), h.config.MaxRecords))
	}

	ids, err := h.store.ImportRecords(input.Collection, payload)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	h.logger.Info("Import applied", map[string]interface{}{
		"collection": input.Collection,
		"batchId":    batchID,
		"count":      len(ids),
	})

	return &Output{
		Success:       true,
		Message:       fmt.Sprintf("Imported %d records into %s", len(ids), input.Collection),
		Collection:    input.Collection,
		BatchID:       batchID,
		ImportedCount: len(ids),
		ImportedIDs:   ids,
	}, nil
}

// decodePayload normalizes the raw import body to a JSON array.
func (h *Handler) decodePayload(input *Input) ([]byte, error) {
	switch strings.ToLower(input.Format) {
	case store.FormatJSON:
		return []byte(input.Data), nil
	case store.FormatCSV:
		_, rows, err := store.ParseCSV(input.Data)
		if err != nil {
			return nil, err
		}
		return store.RowsToJSON(input.Collection, rows)
	default:
		return nil, errors.NewImportUnsupportedTypeError(input.Format)
	}
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
		return nil, errors.NewRecordValidationError("collection is required")
	}
	if input.Data == "" {
		return nil, errors.NewRecordValidationError("data is required")
	}
	return &input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	variables := map[string]interface{}{
		"importSucceeded": output.Success,
		"message":         output.Message,
		"importBatchId":   output.BatchID,
		"importedCount":   output.ImportedCount,
		"importedIds":     output.ImportedIDs,
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

	h.logger.Error("Import job failed", map[string]interface{}{
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
		Code:      "IMPORT_ERROR",
		Message:   "Failed to import records",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now(),
	}
}
