package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	// Application
	applicationPort "github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/application/usecase"

	// Domain
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"

	// Infrastructure
	redisCache "github.com/dreschagin/monitoring-engine/internal/infrastructure/cache/redis"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/collector"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/healthcheck"
	natsInfra "github.com/dreschagin/monitoring-engine/internal/infrastructure/messaging/nats"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/notification"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/notification/console"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/notification/email"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/notification/webhook"
	wsInfra "github.com/dreschagin/monitoring-engine/internal/infrastructure/notification/websocket"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/observability/cloudwatch"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/persistence/memory"
	"github.com/dreschagin/monitoring-engine/internal/infrastructure/persistence/postgres"

	// Interfaces
	httpInterface "github.com/dreschagin/monitoring-engine/internal/interfaces/http"
	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/handler"
	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/middleware"

	// Shared
	"github.com/dreschagin/monitoring-engine/internal/clock"
	"github.com/dreschagin/monitoring-engine/internal/scheduler"
	"github.com/dreschagin/monitoring-engine/pkg/config"
	"github.com/dreschagin/monitoring-engine/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	// 1. Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализируем logger
	log := logger.New(os.Getenv("LOG_LEVEL"))
	log.Info("Starting Monitoring Engine", "hostname", cfg.Monitoring.Hostname)

	// 3. Загружаем правила алертов и список сервисов
	rulesFile, warnings, err := config.LoadRulesFile(cfg.Monitoring.RulesFile)
	if err != nil {
		log.Error("Failed to load rules file", err, "path", cfg.Monitoring.RulesFile)
		os.Exit(1)
	}
	for _, warning := range warnings {
		log.Warn("Rules file entry skipped", "reason", warning)
	}

	rules := buildRules(rulesFile, log)
	services := buildServiceSpecs(rulesFile)
	log.Info("Rules loaded", "rules", len(rules), "services", len(services))

	// 4. Подключаемся к БД
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Проверяем подключение
	if err := db.Ping(); err != nil {
		log.Error("Failed to ping database", err)
		os.Exit(1)
	}
	log.Info("Database connected successfully")

	// 5. Dependency Injection - Infrastructure Layer

	// Repositories
	metricRepository := postgres.NewPostgresMetricRepository(db)
	alertRepository := postgres.NewPostgresAlertRepository(db)
	healthCheckRepository := postgres.NewPostgresHealthCheckRepository(db)

	// In-memory snapshot хранит последние сэмплы для оценки правил
	snapshotStore := memory.NewSnapshotStore()

	// Collectors и probers
	metricsCollector := collector.NewSystemMetricsCollector(os.Getenv("DISK_PATH"), log)
	prober := healthcheck.NewProber(log)

	// WebSocket Hub
	hub := wsInfra.NewHub(log)

	// 6. Dependency Injection - Domain Layer
	ruleEngine := service.NewRuleEngine()
	alertRegistry := service.NewAlertRegistry()
	metricAggregator := service.NewMetricAggregator()

	// Восстанавливаем ACTIVE алерты после рестарта.
	// Окна min_duration восстановленных алертов помечаем набранными,
	// иначе первый тик разрешит алерт, хотя условие все еще держится
	activeAlerts, err := alertRepository.FindActive(context.Background())
	if err != nil {
		log.Warn("Failed to restore active alerts, starting empty", "error", err.Error())
	} else {
		alertRegistry.Restore(activeAlerts)
		restoredIDs := make([]string, 0, len(activeAlerts))
		for _, alert := range activeAlerts {
			restoredIDs = append(restoredIDs, alert.AlertID())
		}
		ruleEngine.Prime(restoredIDs)
		log.Info("Active alerts restored", "count", len(activeAlerts))
	}

	// 6.5. CloudWatch Integration

	var metricsExporter applicationPort.MetricsExporter
	if cfg.CloudWatch.MetricsEnabled {
		publisherImpl, initErr := cloudwatch.NewMetricsPublisher(context.Background(),
			cloudwatch.MetricsPublisherConfig{
				Namespace:         cfg.CloudWatch.MetricsNamespace,
				Region:            cfg.CloudWatch.Region,
				Endpoint:          cfg.CloudWatch.Endpoint,
				AccessKeyID:       cfg.CloudWatch.AccessKeyID,
				SecretAccessKey:   cfg.CloudWatch.SecretAccessKey,
				DefaultDimensions: map[string]string{"Host": cfg.Monitoring.Hostname},
				BufferSize:        cfg.CloudWatch.MetricsBufferSize,
				FlushInterval:     cfg.CloudWatch.MetricsFlushInterval,
				StorageResolution: cfg.CloudWatch.MetricsStorageResolution,
			})
		if initErr != nil {
			log.Error("Failed to initialize CloudWatch metrics publisher", initErr)
			os.Exit(1)
		}
		metricsExporter = publisherImpl
		defer func() { _ = publisherImpl.Close(context.Background()) }()
		log.Info("CloudWatch metrics publisher initialized")
	} else {
		log.Warn("CloudWatch metrics publishing is disabled")
	}

	if cfg.CloudWatch.LogsEnabled {
		logsPublisher, initErr := cloudwatch.NewLogsPublisher(context.Background(),
			cloudwatch.LogsPublisherConfig{
				LogGroupName:    cfg.CloudWatch.LogGroupName,
				LogStreamName:   cfg.CloudWatch.LogStreamName,
				Region:          cfg.CloudWatch.Region,
				Endpoint:        cfg.CloudWatch.Endpoint,
				AccessKeyID:     cfg.CloudWatch.AccessKeyID,
				SecretAccessKey: cfg.CloudWatch.SecretAccessKey,
				BufferSize:      cfg.CloudWatch.LogsBufferSize,
				FlushInterval:   cfg.CloudWatch.LogsFlushInterval,
				AutoCreate:      true,
			})
		if initErr != nil {
			log.Error("Failed to initialize CloudWatch logs publisher", initErr)
			os.Exit(1)
		}
		log.SetSink(logsPublisher)
		defer func() { _ = logsPublisher.Close(context.Background()) }()
		log.Info("CloudWatch logs publisher initialized")
	} else {
		log.Warn("CloudWatch logs publishing is disabled")
	}

	// 6.6. NATS Event Publisher
	var eventPublisher applicationPort.EventPublisher
	if cfg.NATS.Enabled {
		publisherImpl, initErr := natsInfra.NewNATSPublisher(cfg.NATS.URL, log)
		if initErr != nil {
			log.Warn("Failed to connect to NATS, continuing without event publishing", "error", initErr.Error())
		} else {
			eventPublisher = publisherImpl
			defer eventPublisher.Close()
			log.Info("NATS event publisher initialized", "url", cfg.NATS.URL)
		}
	} else {
		log.Warn("NATS event publishing is disabled")
	}

	// 6.7. Redis Cache
	var cache applicationPort.Cache
	if cfg.Redis.Enabled {
		cacheImpl, initErr := redisCache.NewRedisCache(cfg.Redis)
		if initErr != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", "error", initErr.Error())
		} else {
			cache = cacheImpl
			defer cache.Close()
			log.Info("Redis cache initialized")
		}
	} else {
		log.Warn("Redis cache is disabled")
	}

	// 6.8. Notification Channels
	notifiers := make([]applicationPort.Notifier, 0, 3)
	if cfg.Notifications.Console.Enabled {
		notifiers = append(notifiers, console.NewNotifier())
	}
	if cfg.Notifications.Email.Enabled {
		notifiers = append(notifiers, email.NewNotifier(cfg.Notifications.Email))
	}
	if cfg.Notifications.Webhook.Enabled {
		notifiers = append(notifiers, webhook.NewNotifier(cfg.Notifications.Webhook))
	}
	dispatcher := notification.NewDispatcher(notifiers, log)
	log.Info("Notification channels configured", "channels", len(notifiers))

	// 7. Dependency Injection - Application Layer (Use Cases)

	collectMetricsUC := usecase.NewCollectMetricsUseCase(
		metricsCollector,
		metricRepository,
		snapshotStore,
		hub,
		metricsExporter, // Can be nil if CloudWatch disabled
		cfg.Monitoring.Hostname,
		log,
	)

	runHealthChecksUC := usecase.NewRunHealthChecksUseCase(
		prober,
		healthCheckRepository,
		metricRepository,
		snapshotStore,
		services,
		cfg.Monitoring.Hostname,
		log,
	)

	evaluateAlertsUC := usecase.NewEvaluateAlertsUseCase(
		rules,
		ruleEngine,
		alertRegistry,
		alertRepository,
		snapshotStore,
		dispatcher,
		hub,
		eventPublisher, // Can be nil if NATS disabled
		cfg.Monitoring.Hostname,
		log,
	)

	sweepRetentionUC := usecase.NewSweepRetentionUseCase(
		metricRepository,
		alertRepository,
		healthCheckRepository,
		cfg.Monitoring.RetentionDays,
		log,
	)

	getActiveAlertsUC := usecase.NewGetActiveAlertsUseCase(alertRegistry)
	acknowledgeAlertUC := usecase.NewAcknowledgeAlertUseCase(alertRegistry, alertRepository, log)
	getRecentMetricsUC := usecase.NewGetRecentMetricsUseCase(metricRepository, metricAggregator, cache, log)
	getServiceHealthUC := usecase.NewGetServiceHealthUseCase(healthCheckRepository, metricAggregator, log)

	// 8. Dependency Injection - Interfaces Layer (HTTP Handlers)

	authConfig := middleware.AuthConfig{
		Enabled:     cfg.Security.AuthEnabled,
		BearerToken: cfg.Security.AuthToken,
	}

	alertAPIHandler := handler.NewAlertAPIHandler(getActiveAlertsUC, acknowledgeAlertUC, log)
	metricsAPIHandler := handler.NewMetricsAPIHandler(getRecentMetricsUC, 24*time.Hour, log)
	healthAPIHandler := handler.NewHealthAPIHandler(getServiceHealthUC, log)
	websocketHandler := handler.NewWebSocketHandler(hub, cfg.Security.AllowedOrigins, authConfig, log)

	rateLimiter := middleware.NewIPRateLimiter(10, 20)

	router := httpInterface.NewRouter(
		alertAPIHandler,
		metricsAPIHandler,
		healthAPIHandler,
		websocketHandler,
		cfg.Security,
		rateLimiter,
		log,
	)

	// 9. Запускаем WebSocket hub
	go hub.Run()

	// 10. Запускаем scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(
		cfg.Monitoring.TickInterval,
		cfg.Monitoring.SweepInterval,
		[]scheduler.TickFunc{
			collectMetricsUC.Execute,
			runHealthChecksUC.Execute,
			evaluateAlertsUC.Execute,
		},
		sweepRetentionUC.Execute,
		clock.RealClock{},
		log,
	)

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		sched.Run(ctx)
	}()

	// 11. Запускаем HTTP сервер
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// 12. Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("Shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		log.Error("HTTP server failed", err)
	}

	// 13. Graceful shutdown: сначала scheduler, затем HTTP сервер
	cancel()
	<-schedulerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", err)
	}

	log.Info("Monitoring Engine stopped")
}

// buildRules конвертирует конфигурацию правил в Domain Entities.
// Порядок детерминирован (сортировка по имени)
func buildRules(file *config.RulesFile, log *logger.Logger) []entity.AlertRule {
	names := make([]string, 0, len(file.AlertRules))
	for name := range file.AlertRules {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]entity.AlertRule, 0, len(names))
	for _, name := range names {
		rc := file.AlertRules[name]
		rule, err := entity.NewAlertRule(
			name,
			rc.Metric,
			valueobject.Condition(rc.Condition),
			rc.Threshold,
			valueobject.Severity(rc.Severity),
			time.Duration(rc.MinDuration)*time.Second,
		)
		if err != nil {
			log.Warn("Rule skipped", "rule", name, "error", err.Error())
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// buildServiceSpecs конвертирует конфигурацию сервисов в спецификации проверок
func buildServiceSpecs(file *config.RulesFile) []applicationPort.ServiceSpec {
	specs := make([]applicationPort.ServiceSpec, 0, len(file.Services))
	for _, svc := range file.Services {
		specs = append(specs, applicationPort.ServiceSpec{
			Name:        svc.Name,
			Type:        valueobject.CheckType(svc.Type),
			URL:         svc.URL,
			Host:        svc.Host,
			Port:        svc.Port,
			ProcessName: svc.ProcessName,
			Timeout:     svc.ParsedTimeout(),
		})
	}
	return specs
}
