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

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assessment-workers/internal/catalog"
	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/config"
	"assessment-workers/internal/common/database"
	"assessment-workers/internal/common/intake"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/observability"
	"assessment-workers/internal/sessions"
	"assessment-workers/pkg/registry"

	// Catalog Workers (2)
	fl "assessment-workers/internal/workers/catalog/filter-levers"
	sl "assessment-workers/internal/workers/catalog/search-levers"

	// Assessment Workers (4)
	ba "assessment-workers/internal/workers/assessment/begin-assessment"
	ca "assessment-workers/internal/workers/assessment/compute-assessment"
	gr "assessment-workers/internal/workers/assessment/generate-recommendations"
	ur "assessment-workers/internal/workers/assessment/update-rating"

	// Lead Workers (4)
	cl "assessment-workers/internal/workers/lead/capture-lead"
	cm "assessment-workers/internal/workers/lead/compose-mailto"
	clr "assessment-workers/internal/workers/lead/create-lead-record"
	vld "assessment-workers/internal/workers/lead/validate-lead-data"

	// Communication & Notification Workers (2)
	es "assessment-workers/internal/workers/communication/email-send"
	sn "assessment-workers/internal/workers/notification/send-notification"
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

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      time.Duration(cfg.Camunda.Timeout) * time.Millisecond,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
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

	// --- Load Lever Catalog ---
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			zapLog.Fatal("catalog load failed", zap.Error(err), zap.String("path", cfg.Catalog.Path))
		}
	}
	if report := cat.Sanitize(); !report.Clean() {
		zapLog.Warn("catalog integrity violations",
			zap.Ints("droppedLevers", report.DroppedLevers),
			zap.Strings("droppedDimensions", report.DroppedDimensions),
			zap.Strings("missingDimensions", report.MissingDimensions),
			zap.Strings("missingRecommendations", report.MissingRecommendations),
		)
	}
	zapLog.Info("Catalog loaded",
		zap.Int("levers", len(cat.Levers)),
		zap.Int("dimensions", len(cat.Dimensions)),
	)

	// --- Seed Lever Search Index ---
	leverIndex := cfg.Database.Elasticsearch.LeverIndex
	if leverIndex == "" {
		leverIndex = "levers"
	}
	if err := sl.SeedIndex(ctx, esClient.Client, leverIndex, cat, log); err != nil {
		zapLog.Warn("lever index seeding failed, search worker degraded", zap.Error(err))
	}

	// --- Init Session Store & Intake Client ---
	ttl := time.Duration(cfg.Sessions.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	sessionStore := sessions.NewStore(redis, ttl)

	intakeClient := intake.NewClient(
		cfg.Integrations.Intake.URL,
		time.Duration(cfg.Integrations.Intake.TimeoutMS)*time.Millisecond,
	)

	// --- Activity Registry ---
	if reg, err := registry.LoadRegistry("configs/activity-registry.json"); err != nil {
		zapLog.Warn("activity registry unavailable", zap.Error(err))
	} else {
		for taskType := range cfg.Workers {
			if _, ok := reg.FindByTaskType(taskType); !ok {
				zapLog.Warn("configured worker missing from activity registry", zap.String("taskType", taskType))
			}
		}
		zapLog.Info("Activity registry loaded", zap.Int("activities", len(reg.Activities)))
	}

	// --- START: Register ALL 12 Workers ---

	// --- 1. Catalog Workers (2) ---
	if cfg.Workers[fl.TaskType].Enabled {
		handler := fl.NewHandler(
			&fl.Config{
				Timeout: time.Duration(cfg.Workers[fl.TaskType].Timeout) * time.Millisecond,
			},
			cat, log,
		)
		startWorker(zeebeClient, fl.TaskType, cfg.Workers[fl.TaskType], handler, zapLog)
	}

	if cfg.Workers[sl.TaskType].Enabled {
		slCfg := sl.DefaultConfig()
		slCfg.IndexName = leverIndex
		slCfg.Timeout = time.Duration(cfg.Workers[sl.TaskType].Timeout) * time.Millisecond
		handler := sl.NewHandler(slCfg, esClient.Client, cat, log)
		startWorker(zeebeClient, sl.TaskType, cfg.Workers[sl.TaskType], handler, zapLog)
	}

	// --- 2. Assessment Workers (4) ---
	if cfg.Workers[ba.TaskType].Enabled {
		handler := ba.NewHandler(
			&ba.Config{
				Timeout: time.Duration(cfg.Workers[ba.TaskType].Timeout) * time.Millisecond,
			},
			cat, sessionStore, log,
		)
		startWorker(zeebeClient, ba.TaskType, cfg.Workers[ba.TaskType], handler, zapLog)
	}

	if cfg.Workers[ur.TaskType].Enabled {
		handler := ur.NewHandler(
			&ur.Config{
				Timeout: time.Duration(cfg.Workers[ur.TaskType].Timeout) * time.Millisecond,
			},
			cat, sessionStore, log,
		)
		startWorker(zeebeClient, ur.TaskType, cfg.Workers[ur.TaskType], handler, zapLog)
	}

	if cfg.Workers[ca.TaskType].Enabled {
		handler := ca.NewHandler(
			&ca.Config{
				Timeout: time.Duration(cfg.Workers[ca.TaskType].Timeout) * time.Millisecond,
			},
			cat, sessionStore, log,
		)
		startWorker(zeebeClient, ca.TaskType, cfg.Workers[ca.TaskType], handler, zapLog)
	}

	if cfg.Workers[gr.TaskType].Enabled {
		handler := gr.NewHandler(
			&gr.Config{
				Timeout: time.Duration(cfg.Workers[gr.TaskType].Timeout) * time.Millisecond,
			},
			cat, sessionStore, log,
		)
		startWorker(zeebeClient, gr.TaskType, cfg.Workers[gr.TaskType], handler, zapLog)
	}

	// --- 3. Lead Workers (4) ---
	if cfg.Workers[vld.TaskType].Enabled {
		handler := vld.NewHandler(
			&vld.Config{
				Timeout: time.Duration(cfg.Workers[vld.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, vld.TaskType, cfg.Workers[vld.TaskType], handler, zapLog)
	}

	if cfg.Workers[cl.TaskType].Enabled {
		handler, err := cl.NewHandler(
			&cl.Config{
				Timeout:       time.Duration(cfg.Workers[cl.TaskType].Timeout) * time.Millisecond,
				ArtifactURL:   cfg.Artifacts.PlaybookURL,
				MailtoAddress: cfg.Integrations.Mailto.Address,
			},
			intakeClient, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create capture-lead handler", zap.Error(err))
		}
		startWorker(zeebeClient, cl.TaskType, cfg.Workers[cl.TaskType], handler, zapLog)
	}

	if cfg.Workers[clr.TaskType].Enabled {
		handler := clr.NewHandler(
			&clr.Config{
				Timeout: time.Duration(cfg.Workers[clr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, clr.TaskType, cfg.Workers[clr.TaskType], handler, zapLog)
	}

	if cfg.Workers[cm.TaskType].Enabled {
		handler, err := cm.NewHandler(
			&cm.Config{
				Timeout: time.Duration(cfg.Workers[cm.TaskType].Timeout) * time.Millisecond,
				Address: cfg.Integrations.Mailto.Address,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create compose-mailto handler", zap.Error(err))
		}
		startWorker(zeebeClient, cm.TaskType, cfg.Workers[cm.TaskType], handler, zapLog)
	}

	// --- 4. Communication & Notification Workers (2) ---
	if cfg.Workers[es.TaskType].Enabled && cfg.Integrations.AWS.SES.Enabled {
		handler, err := es.NewHandler(
			&es.Config{
				Enabled:       true,
				MaxJobsActive: cfg.Workers[es.TaskType].MaxJobsActive,
				Timeout:       time.Duration(cfg.Workers[es.TaskType].Timeout) * time.Millisecond,
				AWSRegion:     cfg.Integrations.AWS.Region,
				FromAddress:   cfg.Integrations.AWS.SES.FromEmail,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create email-send handler", zap.Error(err))
		}
		startWorker(zeebeClient, es.TaskType, cfg.Workers[es.TaskType], handler, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled && cfg.Integrations.AWS.SNS.Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				Enabled:   true,
				Timeout:   time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
				AWSRegion: cfg.Integrations.AWS.Region,
				TopicARN:  cfg.Integrations.AWS.SNS.TopicARN,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler, zapLog)
	}

	zapLog.Info("All 12 workers registered successfully")

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	closed := make(chan struct{})
	go func() {
		if err := camundaClient.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
		close(closed)
	}()

	select {
	case <-closed:
		zapLog.Info("Worker manager stopped gracefully")
	case <-shutdownCtx.Done():
		zapLog.Warn("Shutdown timed out before the Zeebe client closed")
	}
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	w := camunda.NewWorker(
		client,
		taskType,
		wcfg.MaxJobsActive,
		time.Duration(wcfg.Timeout)*time.Millisecond,
		handler,
		log,
	)
	w.Start()
}
