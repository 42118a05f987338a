package quiz

import (
	"context"
	"errors"
)

var (
	// ErrEmptyQuestion rejects a question add with blank text.
	ErrEmptyQuestion = errors.New("question text is empty")
	// ErrBadAnswer rejects an answer key that does not resolve to A-D.
	ErrBadAnswer = errors.New("answer does not resolve to an option letter")
	// ErrEmptyBatch rejects a submission that carries no answers.
	ErrEmptyBatch = errors.New("no answers to record")
)

type Store interface {
	// AddQuestion inserts a question. Duplicate text is silently ignored;
	// inserted reports whether a new row landed.
	AddQuestion(ctx context.Context, q Question) (inserted bool, err error)
	CountQuestions(ctx context.Context) (int, error)

	// RandomSample draws up to n questions uniformly. Fewer than n rows is
	// not an error; the caller gets whatever matched.
	RandomSample(ctx context.Context, n int) ([]Question, error)
	// SampleByChapters draws up to n questions whose chapter is in chapters.
	SampleByChapters(ctx context.Context, chapters []string, n int) ([]Question, error)

	// RecordBatch appends one attempt row per answer for the student, all in
	// a single transaction.
	RecordBatch(ctx context.Context, studentID string, answers []Answered) error

	// WeakestChapters lists the student's attempted chapters by ascending
	// accuracy (ties: more attempts first), truncated to limit. Empty when
	// the student has no history.
	WeakestChapters(ctx context.Context, studentID string, limit int) ([]ChapterStat, error)

	Overall(ctx context.Context, studentID string) (OverallStat, error)
	SubjectAccuracy(ctx context.Context, studentID string) ([]SubjectStat, error)
	// ChapterBreakdown aggregates the student's attempts restricted to the
	// given question ids, grouped by chapter (per-test performance view).
	ChapterBreakdown(ctx context.Context, studentID string, questionIDs []int64) ([]ChapterStat, error)
	// Leaderboard ranks all students by accuracy desc, then attempts desc.
	Leaderboard(ctx context.Context) ([]StudentStat, error)
	// StudentSummaries lists all students by ascending accuracy (students
	// needing attention first), attempts desc on ties.
	StudentSummaries(ctx context.Context) ([]StudentStat, error)
	AccuracyTrend(ctx context.Context, studentID string) ([]TrendPoint, error)

	SaveReminder(ctx context.Context, studentID string, weakChapters []string, text string) error
	ListReminders(ctx context.Context, limit int) ([]Reminder, error)
}
