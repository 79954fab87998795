package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/classkit/qna-checker/internal/api/http"
	"github.com/classkit/qna-checker/internal/config"
	"github.com/classkit/qna-checker/internal/db"
	"github.com/classkit/qna-checker/internal/qna"
	"github.com/classkit/qna-checker/internal/review"
	"github.com/classkit/qna-checker/internal/wizard"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := qna.NewSQLStore(dbh, cfg.DBDriver)

	questions := qna.NewQuestionSetService(store)
	answers := qna.NewAnswerService(store)
	wizards := wizard.NewManager(questions, answers)
	reviews := review.NewManager(questions, answers)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Question sets
	r.Get("/questions", api.GetQuestionsHandler(questions))
	r.Put("/questions/{dateKey}", api.SaveQuestionsHandler(questions))
	r.Get("/questions-dates", api.ListQuestionDatesHandler(questions))

	// Student wizard
	r.Post("/sessions", api.CreateWizardSessionHandler(wizards))
	r.Route("/sessions/{sessionID}", func(sr chi.Router) {
		sr.Get("/", api.GetWizardHandler(wizards))
		sr.Post("/start", api.StartWizardHandler(wizards))
		sr.Post("/back", api.BackWizardHandler(wizards))
		sr.Post("/next", api.NextWizardHandler(wizards))
		sr.Post("/answer", api.EditAnswerHandler(wizards))
		sr.Post("/preview", api.PreviewWizardHandler(wizards))
		sr.Post("/submit", api.SubmitWizardHandler(wizards))
	})

	// Teacher review
	r.Post("/review-sessions", api.CreateReviewSessionHandler(reviews))
	r.Route("/review-sessions/{sessionID}", func(rr chi.Router) {
		rr.Post("/editor/load", api.EditorLoadHandler(reviews))
		rr.Post("/editor/resize", api.EditorResizeHandler(reviews))
		rr.Post("/editor/reset", api.EditorResetHandler(reviews))
		rr.Post("/editor/draft", api.EditorSetDraftHandler(reviews))
		rr.Post("/editor/save", api.EditorSaveHandler(reviews))
		rr.Post("/checker/load", api.CheckerLoadHandler(reviews))
		rr.Post("/checker/toggle", api.CheckerToggleHandler(reviews))
		rr.Post("/checker/save", api.CheckerSaveHandler(reviews))
		rr.Post("/checker/check-all", api.CheckerCheckAllHandler(reviews))
		rr.Get("/checker/export", api.ExportHandler(reviews))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
