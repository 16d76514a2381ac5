package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"leavetrack/internal/audit"
	"leavetrack/internal/balance"
	"leavetrack/internal/messaging/kafka"
	"leavetrack/internal/rbac"
	"leavetrack/internal/report"
	"leavetrack/internal/request"
	"leavetrack/internal/shared/counter"
	"leavetrack/internal/timeentry"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (audit.Recorder, error) {
	// --- Repositories ---
	balanceRepo := balance.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Audit ---
	auditRecorder := audit.NewOutboxRecorder(outboxRepo)

	// --- Services ---
	balanceLedger := balance.NewLedger(balanceRepo)
	balanceService := balance.NewService(db, balanceRepo, balanceLedger, auditRecorder)
	requestService := request.NewService(db, requestRepo, balanceLedger, counterRepo, auditRecorder)
	timeEntryService := timeentry.NewService(timeEntryRepo)
	reportService := report.NewService(reportRepo, rdb)

	// --- Handlers ---
	balanceHandler := balance.NewHandler(balanceService)
	requestHandler := request.NewHandlerWithRedis(requestService, rdb)
	timeEntryHandler := timeentry.NewHandler(timeEntryService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		request.RegisterRoutes(api, requestHandler, rbacService, rdb)
		timeentry.RegisterRoutes(api, timeEntryHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
	}

	return auditRecorder, nil
}
