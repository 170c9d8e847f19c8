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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fraudscan-workers/internal/common/aws"
	"fraudscan-workers/internal/common/config"
	"fraudscan-workers/internal/common/database"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/common/observability"
	"fraudscan-workers/internal/connectors"
	"fraudscan-workers/internal/engine"
	"fraudscan-workers/internal/store"

	ac "fraudscan-workers/internal/workers/analysis/analyze-company"
	la "fraudscan-workers/internal/workers/analysis/list-analyses"
	alc "fraudscan-workers/internal/workers/notification/alert-critical"
)

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
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS notification clients ---
	var snsClient *aws.SNSClient
	var sesClient *aws.SESClient
	if cfg.Notifications.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
	}
	if cfg.Notifications.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
	}

	// --- Build the analysis pipeline ---
	sourceSet := connectors.New(cfg.Sources, redis, log)

	thresholds := engine.DefaultThresholds()
	if cfg.Engine.HighYieldThreshold > 0 {
		thresholds.HighYieldPct = cfg.Engine.HighYieldThreshold
	}
	if cfg.Engine.YoungDomainDays > 0 {
		thresholds.YoungDomainDays = cfg.Engine.YoungDomainDays
		thresholds.YoungCompanyDays = cfg.Engine.YoungDomainDays
	}
	if cfg.Engine.EstablishedDays > 0 {
		thresholds.EstablishedDays = cfg.Engine.EstablishedDays
		thresholds.EstablishedDomainDays = cfg.Engine.EstablishedDays
	}

	riskEngine, err := engine.New(engine.Config{
		Weights: engine.Weights{
			Registration:  cfg.Engine.WeightRegistration,
			Financial:     cfg.Engine.WeightFinancial,
			Domain:        cfg.Engine.WeightDomain,
			Regulatory:    cfg.Engine.WeightRegulatory,
			Reputation:    cfg.Engine.WeightReputation,
			BusinessModel: cfg.Engine.WeightBusinessModel,
		},
		Thresholds:   thresholds,
		FetchTimeout: cfg.Sources.FetchTimeoutDuration(),
	}, sourceSet, log)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	analysisStore := store.NewAnalysisStore(pg.DB, log)
	indexer := store.NewSearchIndexer(esClient, cfg.Database.Elasticsearch.Index, log)

	// --- Register workers ---
	if cfg.Workers[ac.TaskType].Enabled {
		handler := ac.NewHandler(
			&ac.Config{
				Timeout: time.Duration(cfg.Workers[ac.TaskType].Timeout) * time.Millisecond,
			},
			riskEngine, analysisStore, indexer, log,
		)
		startWorker(zeebeClient, ac.TaskType, cfg.Workers[ac.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[la.TaskType].Enabled {
		handler := la.NewHandler(
			&la.Config{
				Timeout: time.Duration(cfg.Workers[la.TaskType].Timeout) * time.Millisecond,
			},
			analysisStore, log,
		)
		startWorker(zeebeClient, la.TaskType, cfg.Workers[la.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[alc.TaskType].Enabled {
		handler := alc.NewHandler(
			&alc.Config{
				Timeout:    time.Duration(cfg.Workers[alc.TaskType].Timeout) * time.Millisecond,
				SNSEnabled: cfg.Notifications.AWS.SNS.Enabled,
				TopicARN:   cfg.Notifications.AWS.SNS.TopicARN,
				SESEnabled: cfg.Notifications.AWS.SES.Enabled,
				FromEmail:  cfg.Notifications.AWS.SES.FromEmail,
				ReportTo:   cfg.Notifications.AWS.SES.ReportTo,
			},
			snsClient, sesClient, log,
		)
		startWorker(zeebeClient, alc.TaskType, cfg.Workers[alc.TaskType], handler.Handle, zapLog)
	}

	// --- Health/Metrics server ---
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

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
