package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/smartlearn-ai/smartlearn/internal/db"
	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

var dbSeq int

// newTestStore opens a fresh in-memory sqlite store with schema applied.
func newTestStore(t *testing.T) *quiz.SQLStore {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:quiztest%d?mode=memory&cache=shared", dbSeq)
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return quiz.NewSQLStore(dbh)
}

func seedQuestion(t *testing.T, s *quiz.SQLStore, text, chapter, subject, answer string) {
	t.Helper()
	_, err := s.AddQuestion(context.Background(), quiz.Question{
		Text:    text,
		OptionA: "opt a", OptionB: "opt b", OptionC: "opt c", OptionD: "opt d",
		Answer:  answer,
		Subject: subject,
		Chapter: chapter,
	})
	if err != nil {
		t.Fatalf("seed question %q: %v", text, err)
	}
}

func TestAddQuestionDuplicateIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ins, err := s.AddQuestion(ctx, quiz.Question{Text: "What is inertia?", Answer: "A"})
	if err != nil || !ins {
		t.Fatalf("first insert: inserted=%v err=%v", ins, err)
	}
	ins, err = s.AddQuestion(ctx, quiz.Question{Text: "What is inertia?", Answer: "B"})
	if err != nil {
		t.Fatalf("duplicate insert errored: %v", err)
	}
	if ins {
		t.Error("duplicate insert reported as inserted")
	}
	n, err := s.CountQuestions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("row count = %d after duplicate insert, want 1", n)
	}
}

func TestAddQuestionValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddQuestion(ctx, quiz.Question{Text: "   "}); !errors.Is(err, quiz.ErrEmptyQuestion) {
		t.Errorf("blank text: err = %v, want ErrEmptyQuestion", err)
	}
	q := quiz.Question{Text: "Unit of force?", Answer: "42"}
	if _, err := s.AddQuestion(ctx, q); !errors.Is(err, quiz.ErrBadAnswer) {
		t.Errorf("unresolvable answer: err = %v, want ErrBadAnswer", err)
	}
}

func TestAddQuestionNormalizesAnswer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddQuestion(ctx, quiz.Question{
		Text:    "Acceleration from 0 to 10 m/s in 2s?",
		OptionA: "5 m/s^2", OptionB: "10 m/s^2", OptionC: "15 m/s^2", OptionD: "20 m/s^2",
		Answer: "5 m/s^2", // option text, should resolve to A
	})
	if err != nil {
		t.Fatal(err)
	}
	qs, err := s.RandomSample(ctx, 1)
	if err != nil || len(qs) != 1 {
		t.Fatalf("sample: %v (%d rows)", err, len(qs))
	}
	if qs[0].Answer != "A" {
		t.Errorf("stored answer = %q, want normalized letter A", qs[0].Answer)
	}
}

func TestRandomSampleUndersizedPool(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		seedQuestion(t, s, fmt.Sprintf("q%d", i), "Kinematics", "Physics", "A")
	}
	qs, err := s.RandomSample(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 3 {
		t.Errorf("sample of 10 on 3-row pool returned %d rows, want 3", len(qs))
	}
}

func TestSampleByChapters(t *testing.T) {
	s := newTestStore(t)
	seedQuestion(t, s, "k1", "Kinematics", "Physics", "A")
	seedQuestion(t, s, "k2", "Kinematics", "Physics", "B")
	seedQuestion(t, s, "o1", "Optics", "Physics", "C")

	qs, err := s.SampleByChapters(context.Background(), []string{"Kinematics"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d rows, want 2", len(qs))
	}
	for _, q := range qs {
		if q.Chapter != "Kinematics" {
			t.Errorf("sample leaked chapter %q", q.Chapter)
		}
	}

	qs, err = s.SampleByChapters(context.Background(), nil, 10)
	if err != nil || qs != nil {
		t.Errorf("empty chapter set: got %v rows, err %v", qs, err)
	}
}

func TestRecordBatchAndOverall(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		seedQuestion(t, s, fmt.Sprintf("q%d", i), "Kinematics", "Physics", "A")
	}
	qs, err := s.RandomSample(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	answers := make([]quiz.Answered, len(qs))
	for i, q := range qs {
		answers[i] = quiz.Answered{QuestionID: q.ID, Correct: true}
	}
	if err := s.RecordBatch(ctx, "student_1", answers); err != nil {
		t.Fatal(err)
	}

	o, err := s.Overall(ctx, "student_1")
	if err != nil {
		t.Fatal(err)
	}
	if o.Attempted != 5 || o.Correct != 5 || o.Acc != 100.0 {
		t.Errorf("overall = %+v, want 5/5 at 100%%", o)
	}
}

func TestRecordBatchEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordBatch(context.Background(), "s", nil); !errors.Is(err, quiz.ErrEmptyBatch) {
		t.Errorf("err = %v, want ErrEmptyBatch", err)
	}
}

// record seeds attempts for one student across the given chapters.
func record(t *testing.T, s *quiz.SQLStore, student string, byChapter map[string][]bool, chapterQuestions map[string][]int64) {
	t.Helper()
	var answers []quiz.Answered
	for ch, outcomes := range byChapter {
		ids := chapterQuestions[ch]
		for i, ok := range outcomes {
			answers = append(answers, quiz.Answered{QuestionID: ids[i%len(ids)], Correct: ok})
		}
	}
	if err := s.RecordBatch(context.Background(), student, answers); err != nil {
		t.Fatal(err)
	}
}

func seedChapters(t *testing.T, s *quiz.SQLStore, chapters ...string) map[string][]int64 {
	t.Helper()
	ctx := context.Background()
	out := make(map[string][]int64, len(chapters))
	for _, ch := range chapters {
		for i := 0; i < 3; i++ {
			seedQuestion(t, s, fmt.Sprintf("%s-q%d", ch, i), ch, "Physics", "A")
		}
		qs, err := s.SampleByChapters(ctx, []string{ch}, 3)
		if err != nil {
			t.Fatal(err)
		}
		for _, q := range qs {
			out[ch] = append(out[ch], q.ID)
		}
	}
	return out
}

func TestChapterBreakdown(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ids := seedChapters(t, s, "Kinematics", "Optics")

	// One attempt per question: 2/3 in Kinematics, 1/3 in Optics.
	var answers []quiz.Answered
	for i, id := range ids["Kinematics"] {
		answers = append(answers, quiz.Answered{QuestionID: id, Correct: i < 2})
	}
	for i, id := range ids["Optics"] {
		answers = append(answers, quiz.Answered{QuestionID: id, Correct: i < 1})
	}
	if err := s.RecordBatch(ctx, "student_1", answers); err != nil {
		t.Fatal(err)
	}

	all := append(append([]int64{}, ids["Kinematics"]...), ids["Optics"]...)
	stats, err := s.ChapterBreakdown(ctx, "student_1", all)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("breakdown = %+v, want 2 chapters", stats)
	}
	byCh := make(map[string]quiz.ChapterStat, len(stats))
	for _, c := range stats {
		byCh[c.Chapter] = c
	}
	if c := byCh["Kinematics"]; c.Correct != 2 || c.Total != 3 {
		t.Errorf("Kinematics = %+v, want 2/3", c)
	}
	if c := byCh["Optics"]; c.Correct != 1 || c.Total != 3 {
		t.Errorf("Optics = %+v, want 1/3", c)
	}

	// The breakdown is scoped to the ids it is asked about.
	kin, err := s.ChapterBreakdown(ctx, "student_1", ids["Kinematics"])
	if err != nil {
		t.Fatal(err)
	}
	if len(kin) != 1 || kin[0].Chapter != "Kinematics" {
		t.Errorf("scoped breakdown = %+v, want Kinematics only", kin)
	}

	// No ids, no rows.
	if stats, err := s.ChapterBreakdown(ctx, "student_1", nil); err != nil || stats != nil {
		t.Errorf("empty id list: stats=%+v err=%v, want nil/nil", stats, err)
	}
}

func TestWeakestChapters(t *testing.T) {
	s := newTestStore(t)
	ids := seedChapters(t, s, "Kinematics", "Optics")
	record(t, s, "student_1", map[string][]bool{
		"Kinematics": {true, false, false}, // 1/3
		"Optics":     {true, true, true},   // 3/3
	}, ids)

	weak, err := s.WeakestChapters(context.Background(), "student_1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(weak) != 1 || weak[0].Chapter != "Kinematics" {
		t.Errorf("weakest = %+v, want [Kinematics]", weak)
	}
}

func TestWeakestChaptersTieBreak(t *testing.T) {
	s := newTestStore(t)
	ids := seedChapters(t, s, "Waves", "Thermo")
	// Both at 50%, but Waves has more attempts and should rank first.
	record(t, s, "student_1", map[string][]bool{
		"Waves":  {true, false, true, false},
		"Thermo": {true, false},
	}, ids)

	weak, err := s.WeakestChapters(context.Background(), "student_1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(weak) != 2 || weak[0].Chapter != "Waves" {
		t.Errorf("tie order = %+v, want Waves first (more attempts)", weak)
	}
}

func TestWeakestChaptersNoHistory(t *testing.T) {
	s := newTestStore(t)
	weak, err := s.WeakestChapters(context.Background(), "ghost", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(weak) != 0 {
		t.Errorf("student with no attempts got chapters: %+v", weak)
	}
}

func TestLeaderboardTieBreak(t *testing.T) {
	s := newTestStore(t)
	ids := seedChapters(t, s, "Kinematics")
	// Equal accuracy (50%); student_b has more attempts and sorts first.
	record(t, s, "student_a", map[string][]bool{"Kinematics": {true, false}}, ids)
	record(t, s, "student_b", map[string][]bool{"Kinematics": {true, true, false, false}}, ids)

	rows, err := s.Leaderboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].StudentID != "student_b" {
		t.Errorf("leaderboard = %+v, want student_b first", rows)
	}
}

func TestAccuracyTrend(t *testing.T) {
	s := newTestStore(t)
	ids := seedChapters(t, s, "Kinematics")
	record(t, s, "student_1", map[string][]bool{"Kinematics": {true, false}}, ids)

	trend, err := s.AccuracyTrend(context.Background(), "student_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(trend) != 2 {
		t.Fatalf("trend has %d points, want 2", len(trend))
	}
	if trend[0].Cumulative != 100.0 || trend[1].Cumulative != 50.0 {
		t.Errorf("trend = %+v, want running mean 100 then 50", trend)
	}
}

func TestGenerateReminder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// No history: nothing written.
	if _, ok, err := quiz.GenerateReminder(ctx, s, "ghost"); err != nil || ok {
		t.Errorf("no-history reminder: ok=%v err=%v, want no-op", ok, err)
	}
	rems, err := s.ListReminders(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rems) != 0 {
		t.Fatalf("reminder written for student without history: %+v", rems)
	}

	ids := seedChapters(t, s, "Kinematics", "Optics")
	record(t, s, "student_1", map[string][]bool{
		"Kinematics": {false, false},
		"Optics":     {true, true},
	}, ids)

	// Append-only: two generations leave two identical records.
	for i := 0; i < 2; i++ {
		weak, ok, err := quiz.GenerateReminder(ctx, s, "student_1")
		if err != nil || !ok {
			t.Fatalf("generate #%d: ok=%v err=%v", i+1, ok, err)
		}
		if weak[0] != "Kinematics" {
			t.Errorf("weak chapters = %v, want Kinematics first", weak)
		}
	}
	rems, err = s.ListReminders(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rems) != 2 {
		t.Errorf("reminder count = %d, want 2 (append-only, no dedup)", len(rems))
	}
}
