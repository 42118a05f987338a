package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

// POST /questions — admin entry of a single question. Duplicate text is an
// accepted no-op, not a failure.
func AddQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		inserted, err := store.AddQuestion(r.Context(), q)
		switch {
		case errors.Is(err, quiz.ErrEmptyQuestion), errors.Is(err, quiz.ErrBadAnswer):
			http.Error(w, err.Error(), 400)
			return
		case err != nil:
			http.Error(w, err.Error(), 500)
			return
		}
		if !inserted {
			writeJSON(w, map[string]interface{}{"inserted": false, "detail": "duplicate question skipped"})
			return
		}
		writeJSONStatus(w, http.StatusCreated, map[string]interface{}{"inserted": true})
	}
}

// GET /questions/count — the question-pool size shown in the sidebar.
func CountQuestionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := store.CountQuestions(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]int{"total_questions": n})
	}
}
