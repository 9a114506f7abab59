// cmd/advisor/main.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"product-advisor/internal/catalog"
	"product-advisor/internal/common/config"
	"product-advisor/internal/common/database"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/common/observability"
	"product-advisor/internal/common/validation"
	"product-advisor/internal/index"
	"product-advisor/internal/llm"
	"product-advisor/internal/models"
	"product-advisor/internal/pipeline"
	"product-advisor/internal/pipeline/enrich"
	"product-advisor/internal/pipeline/extract"
	"product-advisor/internal/pipeline/generate"
	"product-advisor/internal/pipeline/prompt"
	"product-advisor/internal/pipeline/retrieve"
	"product-advisor/internal/pipeline/scope"
	"product-advisor/internal/pipeline/websearch"
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
			delay *= 2
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

	zapLog.Info("Starting product advisor...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing := &observability.Tracing{}
	if cfg.Tracing.Enabled {
		tracing, err = observability.NewTracing(cfg.Tracing.ServiceName, cfg.Tracing.JaegerURL)
		if err != nil {
			zapLog.Fatal("tracing init failed", zap.Error(err))
		}
		defer tracing.Shutdown()
	}

	ctx := context.Background()

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

	// --- Load catalog ---
	store := catalog.NewStore(cfg.Pipeline.CatalogTable, log)
	if err := store.Load(ctx, pg.DB); err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	// --- Build semantic index ---
	embedder := index.NewHTTPEmbedder(cfg.APIs.Embeddings)
	semanticIndex := index.New(embedder, log)
	err = retryWithBackoff(func() error {
		return semanticIndex.Build(ctx, store.BuildCorpus())
	}, 5, 2*time.Second, zapLog, "Semantic index build")
	if err != nil {
		zapLog.Fatal("semantic index build failed after retries", zap.Error(err))
	}

	// --- Init Redis response cache (optional) ---
	var responseCache *llm.ResponseCache
	if cfg.Database.Redis.Enabled && cfg.Pipeline.CacheEnabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Warn("redis unavailable, running without response cache", zap.Error(err))
		} else {
			defer rdb.Close()
			responseCache = llm.NewResponseCache(rdb.Client,
				time.Duration(cfg.Pipeline.CacheTTL)*time.Second, log)
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Assemble the pipeline ---
	chatter := llm.NewClient(cfg.APIs.LLM, log)

	validator, err := validation.NewValidator()
	if err != nil {
		zapLog.Fatal("validator init failed", zap.Error(err))
	}

	answerer := pipeline.New(
		pipeline.Config{
			HistoryWindow:  cfg.Pipeline.HistoryWindow,
			UseWebFallback: cfg.Pipeline.UseWebFallback,
			AttributeKeys:  store.AttributeKeys(),
		},
		scope.NewHandler(scope.LoadConfig(), chatter, log),
		enrich.NewHandler(enrich.LoadConfig(), chatter, log),
		extract.NewHandler(extract.LoadConfig(), chatter, validator, log),
		retrieve.NewHandler(retrieve.LoadConfig(cfg.Pipeline), store, semanticIndex, log),
		websearch.NewHandler(websearch.LoadConfig(cfg.APIs.WebSearch), log),
		prompt.NewComposer(log),
		generate.NewHandler(generate.LoadConfig(), chatter, responseCache, log),
		tracing,
		log,
	)

	// --- Health/Metrics server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Chat loop ---
	sessionID := uuid.NewString()
	zapLog.Info("Session started", zap.String("sessionId", sessionID))
	fmt.Println("Trợ lý tư vấn sản phẩm. Nhập câu hỏi, hoặc Ctrl+C để thoát.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	var history []models.ConversationTurn
	for {
		fmt.Print("> ")
		select {
		case <-sigCh:
			zapLog.Info("Shutdown signal received")
			fmt.Println("\nTạm biệt!")
			return
		case line, ok := <-lines:
			if !ok {
				zapLog.Info("Input closed, stopping")
				return
			}
			question := strings.TrimSpace(line)
			if question == "" {
				continue
			}

			turnID := uuid.NewString()
			zapLog.Info("Turn started",
				zap.String("sessionId", sessionID),
				zap.String("turnId", turnID),
			)

			turnCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			start := time.Now()
			reply := answerer.Answer(turnCtx, question, history)
			cancel()

			zapLog.Info("Turn completed",
				zap.String("turnId", turnID),
				zap.Duration("duration", time.Since(start)),
			)

			obs.RecordTurn(turnCtx, "ok")
			obs.RecordTurnDuration(turnCtx, time.Since(start), "ok")

			fmt.Println(reply)
			history = append(history,
				models.ConversationTurn{Role: models.RoleUser, Content: question},
				models.ConversationTurn{Role: models.RoleAssistant, Content: reply},
			)
		}
	}
}
