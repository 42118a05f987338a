package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/smartlearn-ai/smartlearn/internal/api/http"
	"github.com/smartlearn-ai/smartlearn/internal/auth"
	"github.com/smartlearn-ai/smartlearn/internal/config"
	"github.com/smartlearn-ai/smartlearn/internal/db"
	"github.com/smartlearn-ai/smartlearn/internal/quiz"
	"github.com/smartlearn-ai/smartlearn/internal/rbac"
	"github.com/smartlearn-ai/smartlearn/internal/session"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh)
	sessions := session.NewManager(store)

	if err := auth.EnsureAdmin(ctx, dbh, cfg.AdminUser, cfg.AdminPassHash); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}

	// Protected API (JWT -> subject/role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Admin-only: question entry and login accounts
		pr.With(rbac.Require("question:add")).
			Post("/questions", api.AddQuestionHandler(store))
		pr.With(rbac.Require("users:manage")).
			Post("/users", api.UpsertUserHandler(dbh))
		pr.Get("/questions/count", api.CountQuestionsHandler(store))

		// Test flow
		pr.With(rbac.Require("test:take")).
			Post("/tests", api.StartTestHandler(sessions, cfg))
		pr.With(rbac.Require("test:take")).
			Get("/tests/{studentID}", api.GetTestHandler(sessions))
		pr.With(rbac.Require("test:take")).
			Post("/tests/{studentID}/answers", api.AnswerHandler(sessions))
		pr.With(rbac.Require("test:submit")).
			Post("/tests/{studentID}/submit", api.SubmitTestHandler(sessions))
		pr.With(rbac.Require("test:take")).
			Delete("/tests/{studentID}", api.DiscardTestHandler(sessions))

		// Reports
		pr.With(rbac.Require("report:view-own")).
			Get("/students/{studentID}/dashboard", api.DashboardHandler(store))
		pr.With(rbac.Require("report:view-own")).
			Get("/students/{studentID}/weak-chapters", api.WeakChaptersHandler(store))
		pr.With(rbac.Require("leaderboard:view")).
			Get("/leaderboard", api.LeaderboardHandler(store))
		pr.With(rbac.Require("students:list")).
			Get("/students", api.StudentSummariesHandler(store))

		// Reminders
		pr.With(rbac.Require("reminder:generate")).
			Post("/students/{studentID}/reminders", api.GenerateReminderHandler(store))
		pr.With(rbac.Require("reminder:view")).
			Get("/reminders", api.ListRemindersHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("smartlearn listening on %s (driver=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
