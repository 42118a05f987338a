package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

const defaultReminderLimit = 50

// POST /students/{studentID}/reminders — generate a reminder from the
// student's weakest chapters. Without history there is nothing to say, so
// nothing is written.
func GenerateReminderHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "studentID")
		weak, ok, err := quiz.GenerateReminder(r.Context(), store, sid)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			writeJSON(w, map[string]interface{}{"generated": false, "detail": "no history to generate reminder"})
			return
		}
		writeJSONStatus(w, http.StatusCreated, map[string]interface{}{"generated": true, "weak_chapters": weak})
	}
}

// GET /reminders?limit=50 — most recent saved reminders.
func ListRemindersHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), defaultReminderLimit)
		rems, err := store.ListReminders(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rems == nil {
			rems = []quiz.Reminder{}
		}
		writeJSON(w, rems)
	}
}
