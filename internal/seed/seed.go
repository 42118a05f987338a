// Package seed generates synthetic attempt data for demo students and
// offers a quick table-count check of the store.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"

	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

// DefaultStudents are the demo identities seeded when none are given.
var DefaultStudents = []string{"student_1", "student_2", "student_3"}

// Demo records perStudent random attempts for each student, drawn with
// replacement from the question pool. Correctness is biased 2:1 toward
// correct so dashboards look plausible.
func Demo(ctx context.Context, db *sql.DB, store quiz.Store, students []string, perStudent int) error {
	ids, err := questionIDs(ctx, db)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return errors.New("no questions found; import questions first")
	}
	if len(students) == 0 {
		students = DefaultStudents
	}
	for _, s := range students {
		answers := make([]quiz.Answered, perStudent)
		for i := range answers {
			answers[i] = quiz.Answered{
				QuestionID: ids[rand.Intn(len(ids))],
				Correct:    rand.Intn(3) > 0,
			}
		}
		if err := store.RecordBatch(ctx, s, answers); err != nil {
			return err
		}
	}
	return nil
}

func questionIDs(ctx context.Context, db *sql.DB) ([]int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM questions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Counts reports row counts for the durable tables.
func Counts(ctx context.Context, db *sql.DB) (map[string]int, error) {
	out := make(map[string]int, 4)
	for _, table := range []string{"questions", "student_scores", "reminders", "users"} {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, err
		}
		out[table] = n
	}
	return out, nil
}
