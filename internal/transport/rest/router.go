package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/satriajanaka/workforce-management/internal/allocation"
	"github.com/satriajanaka/workforce-management/internal/auth"
	"github.com/satriajanaka/workforce-management/internal/dashboard"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/matching"
	"github.com/satriajanaka/workforce-management/internal/project"
	"github.com/satriajanaka/workforce-management/internal/transport/middleware"
	"github.com/satriajanaka/workforce-management/internal/transport/swagger"
	"github.com/satriajanaka/workforce-management/internal/user"
	"github.com/satriajanaka/workforce-management/internal/utilization"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Employee    *employee.Handler
	Project     *project.Handler
	Allocation  *allocation.Handler
	Utilization *utilization.Handler
	Matching    *matching.Handler
	Dashboard   *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewAuthorizer()

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Current user
			pr.Get("/users/me", h.User.GetCurrentUser)
			pr.Post("/users/link-profile", h.User.LinkProfile)

			// Account administration
			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())
				ar.Get("/users/pending", h.User.ListPendingUsers)
				ar.Post("/users/{id}/approve", h.User.ApproveUser)
			})

			// Employee routes
			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.ListEmployees)
				er.Get("/bench", h.Employee.ListBench)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Get("/{id}/matches", h.Matching.MatchProjects)
				er.Get("/{id}/bench-days", h.Utilization.GetBenchDays)

				er.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					mr.Post("/", h.Employee.CreateEmployee)
					mr.Post("/{id}/recompute-status", h.Utilization.RecomputeStatus)
				})
			})

			// Project routes
			pr.Route("/projects", func(jr chi.Router) {
				jr.Get("/", h.Project.ListProjects)
				jr.Get("/{id}", h.Project.GetProject)
				jr.Get("/{id}/matches", h.Matching.MatchEmployees)

				jr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					mr.Post("/", h.Project.CreateProject)
					mr.Patch("/{id}/status", h.Project.UpdateProjectStatus)
				})
			})

			// Allocation routes
			pr.Route("/allocations", func(alr chi.Router) {
				alr.Get("/", h.Allocation.ListAllocations)
				alr.Get("/{id}", h.Allocation.GetAllocation)

				alr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					mr.Post("/", h.Allocation.CreateAllocation)
					mr.Patch("/{id}", h.Allocation.UpdateAllocation)
					mr.Delete("/{id}", h.Allocation.DeleteAllocation)
				})
			})

			// Dashboard
			pr.Get("/dashboard/stats", h.Dashboard.GetStats)
		})
	})
}
