package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/smartlearn-ai/smartlearn/internal/auth"
	"github.com/smartlearn-ai/smartlearn/internal/rbac"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ownStudentID scopes a student-identifier parameter: admins may act on any
// student, everyone else is forced to their own subject.
func ownStudentID(r *http.Request, requested string) string {
	if rbac.RoleFromContext(r.Context()) == "admin" {
		return requested
	}
	return auth.SubjectFromContext(r.Context())
}
