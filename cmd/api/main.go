package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/teamclock/attendance-api/internal/config"
	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/dashboard"
	"github.com/teamclock/attendance-api/internal/domain/user"
	appHTTP "github.com/teamclock/attendance-api/internal/handler/http"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
	"github.com/teamclock/attendance-api/internal/pkg/cron"
	"github.com/teamclock/attendance-api/internal/pkg/database"
	"github.com/teamclock/attendance-api/internal/pkg/jwt"
	"github.com/teamclock/attendance-api/internal/pkg/oauth"
	"github.com/teamclock/attendance-api/internal/pkg/sse"
	"github.com/teamclock/attendance-api/internal/repository/memory"
	"github.com/teamclock/attendance-api/internal/repository/postgresql"
	attendanceService "github.com/teamclock/attendance-api/internal/service/attendance"
	serviceAuth "github.com/teamclock/attendance-api/internal/service/auth"
	dashboardService "github.com/teamclock/attendance-api/internal/service/dashboard"
	reportService "github.com/teamclock/attendance-api/internal/service/report"
)

const version = "v1.0.0"

type repositories struct {
	users      user.UserRepository
	attendance attendance.AttendanceRepository
	dashboard  dashboard.DashboardRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		slog.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:      memory.NewUserRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			dashboard:  memory.NewDashboardRepository(store),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return repositories{}, fmt.Errorf("connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return repositories{}, err
	}
	return repositories{
		users:      postgresql.NewUserRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		dashboard:  postgresql.NewDashboardRepository(db),
		close:      db.Close,
	}, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := parseLevel(cfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Attendance.Location()
	if err != nil {
		return err
	}
	rules, err := attendance.ParseRules(cfg.Attendance.LateAfter, location, cfg.Attendance.SeededPolicy)
	if err != nil {
		return err
	}

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	clk := clock.System()
	hub := sse.NewHub()

	authService := serviceAuth.NewAuthService(repos.users, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.users, clk, rules, hub)
	dashboardSvc := dashboardService.NewDashboardService(repos.dashboard, repos.attendance, repos.users, clk, location)
	reportSvc := reportService.NewReportService(repos.attendance, repos.users, clk, location)

	scheduler := cron.NewScheduler()
	if cfg.Attendance.MarkAbsentEnabled {
		cron.NewAttendanceJobs(repos.attendance, repos.users, clk, location).RegisterJobs(scheduler, cfg.Attendance.MarkAbsentInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			Version:     version,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    logLevel,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authService, googleService, cfg.App.FrontendURL),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Stream:     appHTTP.NewStreamHandler(JWTService, hub),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
