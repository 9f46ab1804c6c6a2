// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bitbank/ledger/config"
	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/application/usecase/ledger"
	"github.com/bitbank/ledger/internal/application/usecase/member"
	"github.com/bitbank/ledger/internal/application/usecase/search"
	"github.com/bitbank/ledger/internal/application/usecase/statistics"
	"github.com/bitbank/ledger/internal/infra/server/router"
	"github.com/bitbank/ledger/internal/integration/adapters"
	"github.com/bitbank/ledger/internal/integration/cache"
	"github.com/bitbank/ledger/internal/integration/entrypoint/controller"
	"github.com/bitbank/ledger/internal/integration/entrypoint/middleware"
	"github.com/bitbank/ledger/internal/integration/messaging"
	"github.com/bitbank/ledger/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	RateLimiter *middleware.RateLimiter
	OutboxRepo  adapter.OutboxRepository
	Clock       adapter.Clock
}

// Options carries the optional infrastructure. Nil fields disable the feature.
type Options struct {
	Redis     *redis.Client
	Publisher *messaging.Publisher
	Clock     adapter.Clock
	DBHealthy controller.HealthChecker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	// Create repositories
	ledgerRepo := persistence.NewLedgerRepository(db)
	memberRepo := persistence.NewMemberRepository(db)
	outboxRepo := persistence.NewOutboxRepository(db)
	statsRepo := persistence.NewStatisticsRepository(db)

	var statsCache statistics.StatisticsCache
	var cacheHealth controller.HealthChecker
	if opts.Redis != nil {
		statsCache = cache.NewStatisticsCache(opts.Redis, cfg.Redis.StatisticsTTL)
		cacheHealth = cache.HealthCheck(opts.Redis)
	}

	// Create use cases
	checkMemberUseCase := member.NewCheckMemberUseCase(memberRepo)
	recordEntryUseCase := ledger.NewRecordEntryUseCase(ledgerRepo, checkMemberUseCase, statsCache, clock)
	searchEntriesUseCase := search.NewSearchEntriesUseCase(
		search.NewCriteriaNormalizer(clock),
		checkMemberUseCase,
		search.NewQueryVariantResolver(ledgerRepo),
	)
	aggregateStatisticsUseCase := statistics.NewAggregateStatisticsUseCase(statsRepo, checkMemberUseCase, statsCache, clock)

	// Create controllers
	dbHealth := opts.DBHealthy
	if dbHealth == nil {
		dbHealth = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	var brokerHealth controller.HealthChecker
	if opts.Publisher != nil {
		publisher := opts.Publisher
		brokerHealth = func() bool { return !publisher.IsClosed() }
	}
	healthController := controller.NewHealthController(dbHealth, cacheHealth, brokerHealth)
	ledgerController := controller.NewLedgerController(recordEntryUseCase, searchEntriesUseCase)
	statisticsController := controller.NewStatisticsController(aggregateStatisticsUseCase)

	// Create middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	var authMiddleware *middleware.AuthMiddleware
	if cfg.JWT.Enabled {
		authMiddleware = middleware.NewAuthMiddleware(adapters.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer))
	}

	r := router.NewRouter(
		healthController,
		ledgerController,
		statisticsController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		RateLimiter: rateLimiter,
		OutboxRepo:  outboxRepo,
		Clock:       clock,
	}
}

// NewOutboxWorker builds the worker that publishes recorded-entry events.
func (i *Injector) NewOutboxWorker(publisher adapter.EventPublisher) *messaging.OutboxWorker {
	return messaging.NewOutboxWorker(i.OutboxRepo, publisher, i.Clock, messaging.WorkerConfig{
		PollInterval: i.Config.Outbox.PollInterval,
		BatchSize:    i.Config.Outbox.BatchSize,
		ClaimTimeout: i.Config.Outbox.ClaimTimeout,
	})
}
