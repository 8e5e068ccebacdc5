package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/config"
	"github.com/cmlabs-hris/timekeeping-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/timekeeping-go/internal/handler/http"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timekeeping-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/timekeeping-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/timekeeping-go/internal/service/holiday"
	identityService "github.com/cmlabs-hris/timekeeping-go/internal/service/identity"
	leaveService "github.com/cmlabs-hris/timekeeping-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/timekeeping-go/internal/service/report"
	timeBankService "github.com/cmlabs-hris/timekeeping-go/internal/service/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/session"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeeping"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var durable *session.Repositories
	if cfg.Storage.Type == "postgres" {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal("Error applying schema: ", err)
		}

		durable = &session.Repositories{
			Employees:  postgresql.NewEmployeeRepository(db),
			Aliases:    postgresql.NewAliasRepository(db),
			Attendance: postgresql.NewAttendanceRepository(db),
			Holidays:   postgresql.NewHolidayRepository(db),
			Licenses:   postgresql.NewLicenseRepository(db),
			Permits:    postgresql.NewPermitRepository(db),
			TimeBank:   postgresql.NewEntryRepository(db),
			Sales:      postgresql.NewSalesRepository(db),
		}
	}

	sess, err := session.Open(ctx, durable, cfg.Timekeeping.PersistQueueSize)
	if err != nil {
		log.Fatal("Error opening session: ", err)
	}
	scheduler := cron.NewScheduler()
	if durable == nil {
		seedMemorySession(ctx, cfg.App, sess)
	} else {
		scheduler.AddJob("persist-flush", cfg.Timekeeping.FlushInterval, sess.Flush)
	}
	scheduler.Start(ctx)

	archive, err := storage.NewLocalStorage(cfg.Storage.ArchivePath)
	if err != nil {
		log.Fatal("Failed to initialize archive storage: ", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		log.Fatal("Failed to initialize JWT service: ", err)
	}

	// Import, relink and clear rewrite many records; they run one at a time.
	batchMu := &sync.Mutex{}

	attendanceSvc := attendanceService.NewAttendanceService(
		sess.Attendance,
		sess.Employees,
		sess.Aliases,
		archive,
		sess,
		batchMu,
		cfg.Import,
		cfg.Timekeeping.ClearConfirmationTTL,
	)
	identitySvc := identityService.NewIdentityService(sess.Aliases, sess.Employees, sess.Attendance, sess, batchMu)
	holidaySvc := holidayService.NewHolidayService(sess.Holidays)
	leaveSvc := leaveService.NewLeaveService(sess.Licenses, sess.Permits, sess.Employees)
	timeBankSvc := timeBankService.NewTimeBankService(sess.TimeBank, sess.Employees)
	employeeSvc := employeeService.NewEmployeeService(sess.Employees)
	reportSvc := reportService.NewReportService(
		sess.Employees,
		sess.Attendance,
		sess.Holidays,
		sess.Licenses,
		sess.Permits,
		sess.Sales,
		cfg.Timekeeping.WeeklyBaseHours,
	)

	router := appHTTP.NewRouter(logger, cfg.App.AllowedOrigins, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Identity:   appHTTP.NewIdentityHandler(identitySvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		TimeBank:   appHTTP.NewTimeBankHandler(timeBankSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		slog.Error("Server error", "error", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
	// Pending writes reach the database before the pool closes.
	if err := sess.Close(shutdownCtx); err != nil {
		slog.Error("Failed to flush session", "error", err)
	}
	slog.Info("Server stopped")
}

func seedMemorySession(ctx context.Context, app config.AppConfig, sess *session.Session) {
	if app.SeedRosterFile != "" {
		data, err := os.ReadFile(app.SeedRosterFile)
		if err != nil {
			log.Fatal("Failed to read roster file: ", err)
		}
		created, err := fixtures.SeedRoster(ctx, sess.Employees, app.SeedRosterFile, data)
		if err != nil {
			log.Fatal("Failed to seed roster: ", err)
		}
		slog.Info("Roster seeded", "employees", created)
	}

	if app.SeedSalesFile != "" {
		adder, ok := sess.Sales.(fixtures.SaleAdder)
		if !ok {
			slog.Warn("Sales store does not accept seeded sales")
			return
		}
		data, err := os.ReadFile(app.SeedSalesFile)
		if err != nil {
			log.Fatal("Failed to read sales file: ", err)
		}
		added, err := fixtures.SeedSales(adder, app.SeedSalesFile, data)
		if err != nil {
			log.Fatal("Failed to seed sales: ", err)
		}
		slog.Info("Sales seeded", "sales", added)
	}
}
