package quiz

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smartlearn-ai/smartlearn/internal/grading"
)

// SQLStore speaks a dialect-neutral subset of SQL and works unchanged
// against sqlite and postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const questionCols = `id,question,option_a,option_b,option_c,option_d,answer,subject,chapter,topic,difficulty,type`

func (s *SQLStore) AddQuestion(ctx context.Context, q Question) (bool, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return false, ErrEmptyQuestion
	}
	letter, ok := grading.Normalize(q.Answer, q.Options())
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrBadAnswer, q.Answer)
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO questions
		(question,option_a,option_b,option_c,option_d,answer,subject,chapter,topic,difficulty,type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (question) DO NOTHING`,
		q.Text, strings.TrimSpace(q.OptionA), strings.TrimSpace(q.OptionB),
		strings.TrimSpace(q.OptionC), strings.TrimSpace(q.OptionD),
		letter, strings.TrimSpace(q.Subject), strings.TrimSpace(q.Chapter),
		strings.TrimSpace(q.Topic), q.Difficulty, q.Type)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLStore) CountQuestions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func (s *SQLStore) RandomSample(ctx context.Context, n int) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionCols+` FROM questions ORDER BY RANDOM() LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) SampleByChapters(ctx context.Context, chapters []string, n int) ([]Question, error) {
	if len(chapters) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(chapters)+1)
	ph := make([]string, len(chapters))
	for i, c := range chapters {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, c)
	}
	args = append(args, n)
	q := fmt.Sprintf(`SELECT `+questionCols+` FROM questions WHERE chapter IN (%s) ORDER BY RANDOM() LIMIT $%d`,
		strings.Join(ph, ","), len(chapters)+1)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func scanQuestions(rows *sql.Rows) ([]Question, error) {
	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.Answer, &q.Subject, &q.Chapter, &q.Topic, &q.Difficulty, &q.Type); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) RecordBatch(ctx context.Context, studentID string, answers []Answered) error {
	if len(answers) == 0 {
		return ErrEmptyBatch
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, a := range answers {
		correct := 0
		if a.Correct {
			correct = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO student_scores (student_id, question_id, is_correct) VALUES ($1,$2,$3)`,
			studentID, a.QuestionID, correct); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) WeakestChapters(ctx context.Context, studentID string, limit int) ([]ChapterStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.chapter, SUM(s.is_correct) AS correct, COUNT(*) AS total
		FROM student_scores s JOIN questions q ON s.question_id = q.id
		WHERE s.student_id = $1
		GROUP BY q.chapter
		ORDER BY (1.0*SUM(s.is_correct)/COUNT(*)) ASC, COUNT(*) DESC
		LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChapterStats(rows)
}

func (s *SQLStore) ChapterBreakdown(ctx context.Context, studentID string, questionIDs []int64) ([]ChapterStat, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(questionIDs)+1)
	args = append(args, studentID)
	ph := make([]string, len(questionIDs))
	for i, id := range questionIDs {
		ph[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}
	q := fmt.Sprintf(`
		SELECT q.chapter, SUM(s.is_correct) AS correct, COUNT(*) AS total
		FROM student_scores s JOIN questions q ON s.question_id = q.id
		WHERE s.student_id = $1 AND s.question_id IN (%s)
		GROUP BY q.chapter`, strings.Join(ph, ","))
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChapterStats(rows)
}

func scanChapterStats(rows *sql.Rows) ([]ChapterStat, error) {
	var out []ChapterStat
	for rows.Next() {
		var c ChapterStat
		if err := rows.Scan(&c.Chapter, &c.Correct, &c.Total); err != nil {
			return nil, err
		}
		c.Acc = percent(c.Correct, c.Total)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) Overall(ctx context.Context, studentID string) (OverallStat, error) {
	var o OverallStat
	var correct sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(is_correct) FROM student_scores WHERE student_id = $1`,
		studentID).Scan(&o.Attempted, &correct)
	if err != nil {
		return OverallStat{}, err
	}
	o.Correct = int(correct.Int64)
	o.Acc = percent(o.Correct, o.Attempted)
	return o, nil
}

func (s *SQLStore) SubjectAccuracy(ctx context.Context, studentID string) ([]SubjectStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.subject, SUM(s.is_correct) AS correct, COUNT(*) AS total
		FROM student_scores s JOIN questions q ON s.question_id = q.id
		WHERE s.student_id = $1
		GROUP BY q.subject`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SubjectStat
	for rows.Next() {
		var st SubjectStat
		if err := rows.Scan(&st.Subject, &st.Correct, &st.Total); err != nil {
			return nil, err
		}
		st.Acc = percent(st.Correct, st.Total)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) Leaderboard(ctx context.Context) ([]StudentStat, error) {
	return s.studentStats(ctx, `DESC`)
}

func (s *SQLStore) StudentSummaries(ctx context.Context) ([]StudentStat, error) {
	return s.studentStats(ctx, `ASC`)
}

func (s *SQLStore) studentStats(ctx context.Context, accOrder string) ([]StudentStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.student_id, COUNT(s.id) AS attempted, SUM(s.is_correct) AS correct
		FROM student_scores s
		GROUP BY s.student_id
		ORDER BY (1.0*SUM(s.is_correct)/COUNT(s.id)) `+accOrder+`, COUNT(s.id) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StudentStat
	for rows.Next() {
		var st StudentStat
		if err := rows.Scan(&st.StudentID, &st.Attempted, &st.Correct); err != nil {
			return nil, err
		}
		st.Acc = percent(st.Correct, st.Attempted)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) AccuracyTrend(ctx context.Context, studentID string) ([]TrendPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, is_correct FROM student_scores WHERE student_id = $1 ORDER BY id`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TrendPoint
	sum, n := 0, 0
	for rows.Next() {
		var id int64
		var correct int
		if err := rows.Scan(&id, &correct); err != nil {
			return nil, err
		}
		sum += correct
		n++
		out = append(out, TrendPoint{AttemptID: id, Cumulative: percent(sum, n)})
	}
	return out, rows.Err()
}

func (s *SQLStore) SaveReminder(ctx context.Context, studentID string, weakChapters []string, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reminders (student_id, weak_chapters, reminder_text) VALUES ($1,$2,$3)`,
		studentID, strings.Join(weakChapters, ","), text)
	return err
}

func (s *SQLStore) ListReminders(ctx context.Context, limit int) ([]Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, student_id, weak_chapters, reminder_text, created_at
		FROM reminders ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.StudentID, &r.WeakChapters, &r.Text, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100.0 * float64(correct) / float64(total)
}
