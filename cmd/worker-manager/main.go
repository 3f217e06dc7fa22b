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

	"gigmatch-workers/internal/common/camunda"
	"gigmatch-workers/internal/common/config"
	"gigmatch-workers/internal/common/database"
	"gigmatch-workers/internal/common/logger"
	"gigmatch-workers/internal/common/observability"
	"gigmatch-workers/internal/matching"
	"gigmatch-workers/pkg/registry"

	// Matching Workers (5)
	cms "gigmatch-workers/internal/workers/matching/calculate-match-score"
	cs "gigmatch-workers/internal/workers/matching/compare-schedules"
	fm "gigmatch-workers/internal/workers/matching/find-matches"
	ga "gigmatch-workers/internal/workers/matching/generate-assignments"
	ra "gigmatch-workers/internal/workers/matching/record-assignments"

	// Data Access Workers (2)
	qp "gigmatch-workers/internal/workers/data-access/query-profiles"
	sc "gigmatch-workers/internal/workers/data-access/search-candidates"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	weights := cfg.Matching.Weights
	// A drifting weight sum is a modeling choice, not a startup failure.
	if err := weights.Validate(); err != nil {
		zapLog.Warn("matching weights do not sum to 1.0", zap.Error(err))
	}
	policy, err := matching.PolicyByName(cfg.Matching.SchedulePolicy)
	if err != nil {
		zapLog.Fatal("invalid schedule policy", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
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

	// --- Register Matching Workers (5) ---
	// Enabled workers should have a contract in the task registry; a miss
	// is a modeling gap, not a startup failure.
	taskRegistry, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("task registry unavailable", zap.String("path", cfg.Registry.Path), zap.Error(err))
	} else {
		for taskType, wcfg := range cfg.Workers {
			if !wcfg.Enabled {
				continue
			}
			if _, err := taskRegistry.FindByTaskType(taskType); err != nil {
				zapLog.Warn("enabled worker has no registry entry", zap.String("taskType", taskType))
			}
		}
	}

	var activeWorkers []*camunda.CamundaWorker
	register := func(w *camunda.CamundaWorker) {
		if w != nil {
			activeWorkers = append(activeWorkers, w)
		}
	}

	// OTel counterpart of the Prometheus worker metrics; wraps every handler.
	instrument := func(taskType string, next func(worker.JobClient, entities.Job)) func(worker.JobClient, entities.Job) {
		return func(c worker.JobClient, j entities.Job) {
			start := time.Now()
			next(c, j)
			obs.RecordJobProcessed(context.Background(), taskType)
			obs.RecordJobDuration(context.Background(), time.Since(start), taskType)
		}
	}

	if cfg.Workers[cms.TaskType].Enabled {
		handler := cms.NewHandler(
			&cms.Config{
				CacheTTL: time.Duration(cfg.Matching.CacheTTL) * time.Second,
				Timeout:  time.Duration(cfg.Workers[cms.TaskType].Timeout) * time.Millisecond,
				Weights:  weights,
				Policy:   policy,
				Observer: obs,
			},
			pg.DB, redis.Client, log,
		)
		register(startWorker(zeebeClient, cms.TaskType, cfg.Workers[cms.TaskType], instrument(cms.TaskType, handler.Handle), zapLog))
	}

	if cfg.Workers[fm.TaskType].Enabled {
		handler := fm.NewHandler(
			&fm.Config{
				Timeout:       time.Duration(cfg.Workers[fm.TaskType].Timeout) * time.Millisecond,
				SlowThreshold: 500 * time.Millisecond,
				Weights:       weights,
				Policy:        policy,
			},
			log,
		)
		register(startWorker(zeebeClient, fm.TaskType, cfg.Workers[fm.TaskType], instrument(fm.TaskType, handler.Handle), zapLog))
	}

	if cfg.Workers[cs.TaskType].Enabled {
		handler := cs.NewHandler(
			&cs.Config{
				Timeout: time.Duration(cfg.Workers[cs.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		register(startWorker(zeebeClient, cs.TaskType, cfg.Workers[cs.TaskType], instrument(cs.TaskType, handler.Handle), zapLog))
	}

	if cfg.Workers[ga.TaskType].Enabled {
		handler := ga.NewHandler(
			&ga.Config{
				Timeout:  time.Duration(cfg.Workers[ga.TaskType].Timeout) * time.Millisecond,
				PoolSize: cfg.Matching.PoolSize,
				Weights:  weights,
				Policy:   policy,
			},
			log,
		)
		register(startWorker(zeebeClient, ga.TaskType, cfg.Workers[ga.TaskType], instrument(ga.TaskType, handler.Handle), zapLog))
	}

	if cfg.Workers[ra.TaskType].Enabled {
		handler := ra.NewHandler(
			&ra.Config{
				Timeout: time.Duration(cfg.Workers[ra.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		register(startWorker(zeebeClient, ra.TaskType, cfg.Workers[ra.TaskType], instrument(ra.TaskType, handler.Handle), zapLog))
	}

	// --- Register Data Access Workers (2) ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		register(startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], instrument(qp.TaskType, handler.Handle), zapLog))
	}

	if cfg.Workers[sc.TaskType].Enabled {
		handler := sc.NewHandler(
			&sc.Config{
				Timeout: time.Duration(cfg.Workers[sc.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		register(startWorker(zeebeClient, sc.TaskType, cfg.Workers[sc.TaskType], instrument(sc.TaskType, handler.Handle), zapLog))
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", len(activeWorkers)))

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

	for _, w := range activeWorkers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) *camunda.CamundaWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	return camunda.NewWorker(client, taskType, camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
	}, camunda.HandlerFunc(handlerFunc), log)
}
