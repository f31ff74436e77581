package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http/middleware"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	locationHandler LocationHandler,
	shiftHandler ShiftHandler,
	vacationHandler VacationHandler,
	notificationHandler NotificationHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftmanager"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/managed", employeeHandler.ListManaged)
				r.Get("/{id}", employeeHandler.Get)
				r.Get("/{id}/statistics", reportHandler.Statistics)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", locationHandler.List)
				r.Get("/{id}", locationHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", locationHandler.Create)
				})
			})

			r.Route("/shift-types", func(r chi.Router) {
				r.Get("/", shiftHandler.ListTypes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", shiftHandler.CreateType)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Get("/{id}", shiftHandler.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", shiftHandler.Create)
					r.Put("/{id}", shiftHandler.Update)
					r.Delete("/{id}", shiftHandler.Delete)
					r.Post("/{id}/assign", shiftHandler.Assign)
				})
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/my", shiftHandler.MyAssignments)
				r.Post("/{id}/confirm", shiftHandler.Confirm)
				r.Post("/{id}/decline", shiftHandler.Decline)
				r.Post("/{id}/clock-in", shiftHandler.ClockIn)
				r.Post("/{id}/clock-out", shiftHandler.ClockOut)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Delete("/{id}", shiftHandler.Unassign)
					r.Post("/{id}/reassign", shiftHandler.Reassign)
				})
			})

			r.Route("/vacation-requests", func(r chi.Router) {
				r.Post("/", vacationHandler.Create)
				r.Get("/my", vacationHandler.ListMine)
				r.Get("/{id}", vacationHandler.Get)
				r.Put("/{id}", vacationHandler.Update)
				r.Post("/{id}/cancel", vacationHandler.Cancel)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", vacationHandler.List)
					r.Post("/{id}/approve", vacationHandler.Approve)
					r.Post("/{id}/reject", vacationHandler.Reject)
					r.Delete("/{id}", vacationHandler.Delete)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read-all", notificationHandler.MarkAllAsRead)
				r.Post("/{id}/read", notificationHandler.MarkAsRead)
				r.Delete("/{id}", notificationHandler.Delete)
			})

			r.Route("/me", func(r chi.Router) {
				r.Get("/statistics", reportHandler.MyStatistics)
				r.Get("/calendar", reportHandler.MyCalendar)
			})
		})
	})
	return r
}
