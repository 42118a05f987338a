package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlearn-ai/smartlearn/internal/config"
	"github.com/smartlearn-ai/smartlearn/internal/session"
)

// POST /tests  { "student_id": "...", "size": 5, "adaptive": false }
// Starts a test, or resumes the student's in-progress one.
func StartTestHandler(mgr *session.Manager, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StudentID string `json:"student_id"`
			Size      int    `json:"size"`
			Adaptive  bool   `json:"adaptive"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		sid := ownStudentID(r, req.StudentID)
		if sid == "" {
			http.Error(w, "student_id required", 400)
			return
		}
		if req.Size == 0 {
			req.Size = 5
		}
		if req.Size < cfg.MinTestSize || req.Size > cfg.MaxTestSize {
			http.Error(w, "size out of bounds", 400)
			return
		}
		s, resumed, err := mgr.Start(r.Context(), sid, req.Size, req.Adaptive)
		switch {
		case errors.Is(err, session.ErrNoQuestions), errors.Is(err, session.ErrNoHistory):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]interface{}{"session": s, "resumed": resumed})
	}
}

// GET /tests/{studentID} — resume view of an in-progress test.
func GetTestHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ownStudentID(r, chi.URLParam(r, "studentID"))
		s, err := mgr.Get(sid)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		writeJSON(w, s)
	}
}

// POST /tests/{studentID}/answers  { "question_id": 7, "choice": "B" }
func AnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ownStudentID(r, chi.URLParam(r, "studentID"))
		var req struct {
			QuestionID int64  `json:"question_id"`
			Choice     string `json:"choice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		err := mgr.Answer(sid, req.QuestionID, req.Choice)
		switch {
		case errors.Is(err, session.ErrNoSession):
			http.Error(w, err.Error(), 404)
			return
		case err != nil:
			http.Error(w, err.Error(), 400)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /tests/{studentID}/submit — grades, records the attempt batch, and
// discards the session.
func SubmitTestHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ownStudentID(r, chi.URLParam(r, "studentID"))
		res, err := mgr.Submit(r.Context(), sid)
		switch {
		case errors.Is(err, session.ErrNoSession):
			http.Error(w, err.Error(), 404)
			return
		case err != nil:
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, res)
	}
}

// DELETE /tests/{studentID} — abandon an in-progress test.
func DiscardTestHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ownStudentID(r, chi.URLParam(r, "studentID"))
		mgr.Discard(sid)
		w.WriteHeader(http.StatusNoContent)
	}
}
