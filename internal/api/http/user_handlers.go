package http

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/smartlearn-ai/smartlearn/internal/auth"
)

// POST /users  { "username": "...", "password": "...", "role": "student" }
// Admin-only upsert of a login account.
func UpsertUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password required", 400)
			return
		}
		if req.Role == "" {
			req.Role = "student"
		}
		if req.Role != "student" && req.Role != "admin" {
			http.Error(w, "role must be student or admin", 400)
			return
		}
		if err := auth.CreateUser(r.Context(), db, req.Username, req.Password, req.Role); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSONStatus(w, http.StatusCreated, map[string]string{"username": req.Username, "role": req.Role})
	}
}
