package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcommands "tarifario/internal/app/commands"
	quotesapp "tarifario/internal/app/handlers/quotes"
	rulesapp "tarifario/internal/app/handlers/rules"
	unitsapp "tarifario/internal/app/handlers/units"
	"tarifario/internal/app/middleware"
	appoutbox "tarifario/internal/app/outbox"
	appqueries "tarifario/internal/app/queries"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/domain/units"
	"tarifario/internal/infra/broker/kafka"
	"tarifario/internal/infra/config"
	mongodb "tarifario/internal/infra/db/mongo"
	ginserver "tarifario/internal/infra/http/gin"
	"tarifario/internal/infra/obs"
	infraoutbox "tarifario/internal/infra/outbox"
	"tarifario/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	ruleRepo, unitRepo, ready, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err, "mode", cfg.StorageMode)
		os.Exit(1)
	}

	box := memory.NewOutbox()
	var eventsBox appoutbox.Outbox
	if cfg.EventsEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()

		worker := &infraoutbox.Worker{
			Store:       box,
			Producer:    producer,
			Logger:      logger,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		eventsBox = box
		logger.Info("rule event publishing enabled", "brokers", len(cfg.KafkaBrokers))
	} else {
		logger.Info("rule event publishing disabled, no KAFKA_BROKERS configured")
	}

	handlers := buildHandlers(logger, ruleRepo, unitRepo, eventsBox)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (pricing.Repository, units.Repository, func() error, error) {
	if cfg.StorageMode == config.StorageMongo {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, nil, err
		}
		ruleRepo := mongodb.NewRuleRepository(client.DB)
		if err := ruleRepo.EnsureIndexes(ctx); err != nil {
			logger.Warn("rule index creation failed", "error", err)
		}
		return ruleRepo, mongodb.NewUnitRepository(client.DB), func() error { return client.Ping(context.Background()) }, nil
	}
	return memory.NewRuleRepository(), memory.NewUnitRepository(), func() error { return nil }, nil
}

func buildHandlers(logger *slog.Logger, ruleRepo pricing.Repository, unitRepo units.Repository, box appoutbox.Outbox) ginserver.Handlers {
	encoder := appoutbox.JSONEventEncoder{}

	commandBus := appcommands.NewInMemoryBus()
	appcommands.RegisterHandler(commandBus, rulesapp.CreateRuleCommand{}.Key(), &rulesapp.CreateRuleHandler{
		Rules: ruleRepo, Units: unitRepo, Outbox: box, Encoder: encoder, Logger: logger,
	})
	appcommands.RegisterHandler(commandBus, rulesapp.UpdateRuleCommand{}.Key(), &rulesapp.UpdateRuleHandler{
		Rules: ruleRepo, Units: unitRepo, Outbox: box, Encoder: encoder, Logger: logger,
	})
	appcommands.RegisterHandler(commandBus, rulesapp.DeleteRuleCommand{}.Key(), &rulesapp.DeleteRuleHandler{
		Rules: ruleRepo, Outbox: box, Encoder: encoder, Logger: logger,
	})
	appcommands.RegisterHandler(commandBus, rulesapp.ToggleRuleCommand{}.Key(), &rulesapp.ToggleRuleHandler{
		Rules: ruleRepo, Outbox: box, Encoder: encoder, Logger: logger,
	})
	appcommands.RegisterHandler(commandBus, unitsapp.CreateUnitCommand{}.Key(), &unitsapp.CreateUnitHandler{
		Units: unitRepo, Logger: logger,
	})

	queryBus := appqueries.NewInMemoryBus()
	appqueries.RegisterHandler(queryBus, rulesapp.ListRulesQuery{}.Key(), &rulesapp.ListRulesHandler{
		Rules: ruleRepo, Units: unitRepo,
	})
	appqueries.RegisterHandler(queryBus, quotesapp.QuoteStayQuery{}.Key(), &quotesapp.QuoteStayHandler{
		Rules: ruleRepo, Units: unitRepo, Logger: logger,
	})
	appqueries.RegisterHandler(queryBus, unitsapp.GetUnitQuery{}.Key(), &unitsapp.GetUnitHandler{Units: unitRepo})
	appqueries.RegisterHandler(queryBus, unitsapp.ListUnitsQuery{}.Key(), &unitsapp.ListUnitsHandler{Units: unitRepo})

	commandMWs := []middleware.CommandMiddleware{
		middleware.Validation(),
		middleware.CommandLogging(logger),
	}
	if box != nil {
		commandMWs = append(commandMWs, middleware.OutboxFlush(box))
	}
	commandsWithMW := middleware.ChainCommands(commandBus, commandMWs...)
	queriesWithMW := middleware.ChainQueries(queryBus, middleware.QueryLogging(logger))

	return ginserver.Handlers{
		Unit:  ginserver.UnitHandler{Commands: commandsWithMW, Queries: queriesWithMW},
		Rule:  ginserver.RuleHandler{Commands: commandsWithMW, Queries: queriesWithMW},
		Quote: ginserver.QuoteHandler{Queries: queriesWithMW},
	}
}
