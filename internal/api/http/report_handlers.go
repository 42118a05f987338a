package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

// Dashboard bundles every read-side projection for one student. All parts
// are recomputed on request; nothing is cached.
type Dashboard struct {
	StudentID string             `json:"student_id"`
	Overall   quiz.OverallStat   `json:"overall"`
	Subjects  []quiz.SubjectStat `json:"subjects,omitempty"`
	Weakest   []quiz.ChapterStat `json:"weakest_chapters,omitempty"`
	Trend     []quiz.TrendPoint  `json:"trend,omitempty"`
	Message   string             `json:"message,omitempty"`
}

const dashboardWeakLimit = 5

// GET /students/{studentID}/dashboard
func DashboardHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ownStudentID(r, chi.URLParam(r, "studentID"))
		ctx := r.Context()

		overall, err := store.Overall(ctx, sid)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		d := Dashboard{StudentID: sid, Overall: overall}
		if overall.Attempted == 0 {
			d.Message = "No attempts yet. Take a test to generate your report."
			writeJSON(w, d)
			return
		}

		if d.Subjects, err = store.SubjectAccuracy(ctx, sid); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if d.Weakest, err = store.WeakestChapters(ctx, sid, dashboardWeakLimit); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if d.Trend, err = store.AccuracyTrend(ctx, sid); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, d)
	}
}

// GET /students/{studentID}/weak-chapters?limit=3
func WeakChaptersHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ownStudentID(r, chi.URLParam(r, "studentID"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), quiz.WeakChapterLimit)
		stats, err := store.WeakestChapters(r.Context(), sid, limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		// Empty means insufficient history, which is fine.
		if stats == nil {
			stats = []quiz.ChapterStat{}
		}
		writeJSON(w, stats)
	}
}

// GET /leaderboard — all students by accuracy desc, attempts desc on ties.
func LeaderboardHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []quiz.StudentStat{}
		}
		writeJSON(w, rows)
	}
}

// GET /students — every student's summary, worst accuracy first (the
// reminder screen lists students needing attention at the top).
func StudentSummariesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.StudentSummaries(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []quiz.StudentStat{}
		}
		writeJSON(w, rows)
	}
}
