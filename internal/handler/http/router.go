package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/handler/http/middleware"
	"github.com/teamclock/attendance-api/internal/handler/http/response"
	"github.com/teamclock/attendance-api/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	Version     string
	FrontendURL string
	LogLevel    slog.Level
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
	Stream     StreamHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-api"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			// EventSource cannot set headers; the stream authenticates with ?token=.
			r.Get("/stream", h.Stream.Stream)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))

				r.Get("/today", h.Attendance.Today)
				r.Post("/checkin", h.Attendance.CheckIn)
				r.Post("/checkout", h.Attendance.CheckOut)
				r.Get("/my-history", h.Attendance.MyHistory)
				r.Get("/my-summary", h.Attendance.MySummary)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)

					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Group(func(r chi.Router) {
						r.Get("/all", h.Dashboard.AllRecords)
						r.Get("/today-status", h.Dashboard.TodayStatus)
						r.Get("/summary", h.Dashboard.TeamSummary)
						r.Get("/weekly-trend", h.Dashboard.WeeklyTrend)
						r.Get("/departments", h.Dashboard.DepartmentBreakdown)
					})
					r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/export", h.Report.Export)
					r.With(middleware.RequirePermission(user.PermissionLiveFeed)).Get("/stream/token", h.Stream.Token)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
