package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/grievance-management/internal/ai"
	"github.com/frahmantamala/grievance-management/internal/auth"
	"github.com/frahmantamala/grievance-management/internal/feedback"
	"github.com/frahmantamala/grievance-management/internal/grievance"
	"github.com/frahmantamala/grievance-management/internal/transport/middleware"
	"github.com/frahmantamala/grievance-management/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	grievanceHandler *grievance.Handler,
	feedbackHandler *feedback.Handler,
	aiHandler *ai.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Image serving stays at root to match the portal frontend paths
	router.Get("/images/{filename}", grievanceHandler.ServeImage)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/forgot/{id}", authHandler.ForgotPassword)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// User routes
			pr.Get("/users/me", userHandler.GetCurrentUser)
			pr.Get("/users/department/{department}", userHandler.GetDepartmentUsers)
			pr.Get("/users/email/{email}", userHandler.GetUserByEmail)
			pr.Put("/users/{id}", userHandler.UpdateProfile)

			// Grievance routes
			pr.Route("/grievances", func(gr chi.Router) {
				gr.Post("/", grievanceHandler.CreateGrievance)
				gr.Get("/", grievanceHandler.GetGrievances)
				gr.Get("/filter", grievanceHandler.FilterGrievances)
				gr.Get("/{id}", grievanceHandler.GetGrievance)
				gr.Put("/{id}", grievanceHandler.UpdateGrievance)
				gr.Post("/{id}/comments", grievanceHandler.AddComment)
				gr.Get("/{id}/comments", grievanceHandler.GetComments)
				gr.Post("/{id}/attachments", grievanceHandler.UploadAttachment)
				gr.Get("/{id}/attachments", grievanceHandler.GetAttachments)
			})

			pr.Get("/uploads/{filename}", grievanceHandler.DownloadAttachment)
			pr.Get("/statistics", grievanceHandler.GetStatistics)

			// Feedback routes
			pr.Route("/feedback", func(fr chi.Router) {
				fr.Post("/", feedbackHandler.CreateFeedback)
				fr.Get("/", feedbackHandler.GetFeedbackList)
				fr.Get("/statistics", feedbackHandler.GetStatistics)
				fr.Get("/{id}", feedbackHandler.GetFeedback)
				fr.Put("/{id}", feedbackHandler.UpdateFeedback)
				fr.Patch("/{id}", feedbackHandler.UpdateFeedback)
				fr.Delete("/{id}", feedbackHandler.DeleteFeedback)
			})

			// AI routes
			pr.Post("/ai/analyze-grievance", aiHandler.AnalyzeGrievance)
		})
	})
}
