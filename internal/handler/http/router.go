package http

import (
	"log/slog"

	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every resource handler mounted under /api/v1.
type Handlers struct {
	Attendance AttendanceHandler
	Identity   IdentityHandler
	Holiday    HolidayHandler
	Leave      LeaveHandler
	TimeBank   TimeBankHandler
	Report     ReportHandler
	Employee   EmployeeHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Post("/import", h.Attendance.Import)
			r.Post("/manual", h.Attendance.AddManualEntry)
			r.Delete("/{key}", h.Attendance.Delete)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/clear/request", h.Attendance.RequestClear)
				r.Post("/clear", h.Attendance.ClearAll)
			})
		})

		r.Route("/identities", func(r chi.Router) {
			r.Get("/virtual", h.Identity.ListVirtual)

			// Admin only
			r.With(middleware.AdminOnly).Post("/relink", h.Identity.Relink)
		})

		r.Route("/aliases", func(r chi.Router) {
			r.Get("/", h.Identity.ListAliases)
			r.Post("/", h.Identity.CreateAlias)
			r.Delete("/{id}", h.Identity.DeleteAlias)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.Holiday.List)
			r.Post("/", h.Holiday.Create)
			r.Delete("/{id}", h.Holiday.Delete)
		})

		r.Route("/licenses", func(r chi.Router) {
			r.Get("/", h.Leave.ListLicenses)
			r.Post("/", h.Leave.CreateLicense)
			r.Post("/{id}/approve", h.Leave.ApproveLicense)
			r.Post("/{id}/reject", h.Leave.RejectLicense)
			r.Delete("/{id}", h.Leave.DeleteLicense)
		})

		r.Route("/permits", func(r chi.Router) {
			r.Get("/", h.Leave.ListPermits)
			r.Post("/", h.Leave.CreatePermit)
			r.Delete("/{id}", h.Leave.DeletePermit)
		})

		r.Route("/timebank", func(r chi.Router) {
			r.Get("/", h.TimeBank.List)
			r.Post("/", h.TimeBank.Append)
			r.Get("/balance", h.TimeBank.Balance)
			r.Delete("/{id}", h.TimeBank.Delete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/days", h.Report.Days)
			r.Get("/hours", h.Report.Hours)
			r.Get("/export", h.Report.Export)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.Get("/{id}", h.Employee.Get)
			r.Put("/{id}", h.Employee.Update)
		})
	})
	return r
}
