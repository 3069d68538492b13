// cmd/tools/worker-generator/main.go
//
// Scaffolds a new worker package from an activity-registry entry,
// matching the layout of the existing workers under internal/workers/.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"dealership-workers/pkg/registry"
)

type workerData struct {
	Name        string
	PackageName string
	ConfigKey   string
	TaskType    string
	Category    string
	Description string
	ErrorCode   string
	InputFields string
}

// goTypeFor maps the registry's shorthand schema types to Go types.
func goTypeFor(schemaType string) string {
	switch schemaType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]interface{}"
	case "object":
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// structFields renders the registry's flat inputSchema map as struct
// fields in a stable order.
func structFields(schema map[string]interface{}) string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []string
	for _, name := range names {
		goType := "interface{}"
		if t, ok := schema[name].(string); ok {
			goType = goTypeFor(t)
		}
		fields = append(fields, fmt.Sprintf("\t%s %s `json:\"%s\"`", upperFirst(name), goType, name))
	}
	if len(fields) == 0 {
		return "\t// populate from the BPMN task's input mappings"
	}
	return strings.Join(fields, "\n")
}

const configTemplate = `package {{ .PackageName }}

import (
	"fmt"
	"time"

	"dealership-workers/internal/common/config"
)

type Config struct {
	Enabled       bool          ` + "`mapstructure:\"enabled\"`" + `
	MaxJobsActive int           ` + "`mapstructure:\"max_jobs_active\"`" + `
	Timeout       time.Duration ` + "`mapstructure:\"timeout\"`" + `
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers["{{ .ConfigKey }}"]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
			}
		}
	}
	return cfg
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{ .InputFields }}
}

type Output struct {
	Success bool   ` + "`json:\"success\"`" + `
	Message string ` + "`json:\"message\"`" + `
}
`

const handlerTemplate = `package {{ .PackageName }}

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
	"dealership-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "{{ .TaskType }}"

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
		return nil, fmt.Errorf("invalid configuration for {{ .ConfigKey }}: %w", err)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("{{ .ConfigKey }} requires a store")
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

	h.logger.Info("Processing job", map[string]interface{}{
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	// {{ .Description }}
	return &Output{Success: true}, nil
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
		"success": output.Success,
		"message": output.Message,
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

	h.logger.Error("Job failed", map[string]interface{}{
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
		Code:      "{{ .ErrorCode }}",
		Message:   "{{ .Name }} failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now(),
	}
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	st := store.New(logger.NewNoOpLogger())
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 5, Timeout: 30 * time.Second},
		Store:        st,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h, st
}

func TestExecute(t *testing.T) {
	h, _ := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.True(t, output.Success)
}
`

func main() {
	activityID := flag.String("activity", "", "Activity ID from registry (e.g., submit-deal-to-fi)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	flag.Parse()

	if *activityID == "" {
		fmt.Println("Usage: worker-generator --activity <id> [--output <dir>] [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/worker-generator/main.go --activity submit-deal-to-fi")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *activityID {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activityID, *registryPath)
		os.Exit(1)
	}

	errorCode := "EXECUTION_FAILED"
	if len(activity.ErrorCodes) > 0 {
		errorCode = activity.ErrorCodes[len(activity.ErrorCodes)-1]
	}

	data := workerData{
		Name:        activity.DisplayName,
		PackageName: strings.ReplaceAll(activity.ID, "-", ""),
		ConfigKey:   activity.ID,
		TaskType:    activity.TaskType,
		Category:    activity.Category,
		Description: activity.Description,
		ErrorCode:   errorCode,
		InputFields: structFields(activity.InputSchema),
	}

	workerDir := filepath.Join(*outputDir, activity.Category, activity.ID)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	templates := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}

	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Parse(tmplStr)
		if err != nil {
			fmt.Printf("Error parsing template %s: %v\n", filename, err)
			continue
		}

		filePath := filepath.Join(workerDir, filename)
		file, err := os.Create(filePath)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", filePath, err)
			continue
		}

		if err := tmpl.Execute(file, data); err != nil {
			fmt.Printf("Error executing template for %s: %v\n", filename, err)
		}
		file.Close()

		fmt.Printf("Generated %s\n", filePath)
	}

	fmt.Printf("\nWorker scaffold generated at: %s\n", workerDir)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Fill in Execute in handler.go")
	fmt.Println("  2. Extend the tests in handler_test.go")
	fmt.Println("  3. Register the worker in cmd/worker-manager/main.go")
	fmt.Println("  4. Add the worker's section to configs/config.yaml")
}
