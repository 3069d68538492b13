// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dealership-workers/internal/common/aws"
	"dealership-workers/internal/common/camunda"
	"dealership-workers/internal/common/config"
	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/common/observability"
	"dealership-workers/internal/store"

	// Desking Workers (3)
	cpo "dealership-workers/internal/workers/desking/calculate-payment-options"
	rds "dealership-workers/internal/workers/desking/return-deal-to-sales"
	sdf "dealership-workers/internal/workers/desking/submit-deal-to-fi"

	// Finance Workers (5)
	aca "dealership-workers/internal/workers/finance/approve-credit-application"
	al "dealership-workers/internal/workers/finance/assign-lender"
	dca "dealership-workers/internal/workers/finance/deny-credit-application"
	sca "dealership-workers/internal/workers/finance/submit-credit-application"
	ufd "dealership-workers/internal/workers/finance/update-fi-deal"

	// Sales Workers (5)
	cl "dealership-workers/internal/workers/sales/convert-lead"
	er "dealership-workers/internal/workers/sales/export-records"
	ir "dealership-workers/internal/workers/sales/import-records"
	sr "dealership-workers/internal/workers/sales/search-records"
	sc "dealership-workers/internal/workers/sales/send-communication"
)

// registrable is the common surface of every worker handler.
type registrable interface {
	Register() error
	Close()
	GetTaskType() string
	IsEnabled() bool
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Camunda Client with retry ---
	brokerOpts := camunda.DefaultOptions(cfg.Camunda.BrokerAddress)
	if cfg.Camunda.Timeout > 0 {
		brokerOpts.ConnectTimeout = time.Duration(cfg.Camunda.Timeout) * time.Millisecond
	}
	if cfg.Camunda.RequestTimeout > 0 {
		brokerOpts.RequestTimeout = time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond
	}

	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.Connect(brokerOpts)
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	zapLog.Info("Camunda client connected successfully")

	// --- Init Dealership Store ---
	var dealerStore *store.Store
	if cfg.Store.SeedDemoData {
		dealerStore = store.NewSeeded(log)
		zapLog.Info("Store seeded with demo records")
	} else {
		dealerStore = store.New(log)
	}

	// --- Init AWS Delivery Clients ---
	var sesClient sc.EmailSender
	if cfg.Integrations.AWS.SES.Enabled {
		client, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		sesClient = client
		zapLog.Info("SES client initialized")
	}

	var snsClient sc.SMSSender
	if cfg.Integrations.AWS.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		snsClient = client
		zapLog.Info("SNS client initialized")
	}

	// --- Register ALL 13 Workers ---
	appCfg, cam, st := cfg, camundaClient, dealerStore

	var handlers []registrable
	register := func(handler registrable, err error) {
		if err != nil {
			zapLog.Fatal("failed to create handler", zap.Error(err))
		}
		if regErr := handler.Register(); regErr != nil {
			zapLog.Fatal("failed to register worker",
				zap.String("taskType", handler.GetTaskType()), zap.Error(regErr))
		}
		handlers = append(handlers, handler)
	}

	// Desking (3)
	register(sdf.NewHandler(sdf.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(rds.NewHandler(rds.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(cpo.NewHandler(cpo.HandlerOptions{AppConfig: appCfg, Camunda: cam, Logger: log}))

	// Finance (5)
	register(sca.NewHandler(sca.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(al.NewHandler(al.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(aca.NewHandler(aca.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(dca.NewHandler(dca.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(ufd.NewHandler(ufd.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))

	// Sales (5)
	register(sr.NewHandler(sr.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(cl.NewHandler(cl.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(ir.NewHandler(ir.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(er.NewHandler(er.HandlerOptions{AppConfig: appCfg, Camunda: cam, Store: st, Logger: log}))
	register(sc.NewHandler(sc.HandlerOptions{
		AppConfig: appCfg, Camunda: cam, Store: st,
		SES: sesClient, SNS: snsClient, Logger: log,
	}))

	zapLog.Info("All 13 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
					"time":   time.Now().Format(time.RFC3339),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, handler := range handlers {
		handler.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Camunda client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
