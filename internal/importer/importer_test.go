package importer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartlearn-ai/smartlearn/internal/db"
	"github.com/smartlearn-ai/smartlearn/internal/importer"
	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

var dbSeq int

func newTestStore(t *testing.T) *quiz.SQLStore {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:imptest%d?mode=memory&cache=shared", dbSeq)
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return quiz.NewSQLStore(dbh)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportWithAliasHeaders(t *testing.T) {
	store := newTestStore(t)
	// Headers use underscore/alias spellings; matching is tolerant.
	path := writeCSV(t, `question_text,opt_a,opt_b,opt_c,opt_d,Correct Answer,subject,chapter,topic,difficulty,type
"What is 2+2?",4,5,6,7,A,Math,Arithmetic,Addition,Easy,Numerical
"Speed of light?",3e8 m/s,3e6 m/s,300 m/s,30 m/s,3e8 m/s,Physics,Optics,Light,Medium,Conceptual
`)
	sum, err := importer.File(context.Background(), store, path)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Inserted != 2 || sum.Skipped != 0 || sum.Flagged != 0 {
		t.Errorf("summary = %+v, want 2 inserted", sum)
	}
	if len(sum.Missing) != 0 {
		t.Errorf("missing columns reported: %v", sum.Missing)
	}

	// The full-option-text answer resolved to its letter.
	qs, err := store.SampleByChapters(context.Background(), []string{"Optics"}, 1)
	if err != nil || len(qs) != 1 {
		t.Fatalf("sample: %v (%d rows)", err, len(qs))
	}
	if qs[0].Answer != "A" {
		t.Errorf("answer = %q, want A (matched against option text)", qs[0].Answer)
	}
}

func TestImportSkipsAndFlags(t *testing.T) {
	store := newTestStore(t)
	path := writeCSV(t, `Question,Option A,Option B,Option C,Option D,Answer,Subject,Chapter,Topic,Difficulty,Type
dup question,1,2,3,4,A,Math,Arithmetic,,,
dup question,1,2,3,4,B,Math,Arithmetic,,,
,1,2,3,4,A,Math,Arithmetic,,,
bad answer question,1,2,3,4,nonsense,Math,Arithmetic,,,
`)
	sum, err := importer.File(context.Background(), store, path)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Inserted != 1 {
		t.Errorf("inserted = %d, want 1", sum.Inserted)
	}
	if sum.Skipped != 2 { // duplicate + blank question
		t.Errorf("skipped = %d, want 2", sum.Skipped)
	}
	if sum.Flagged != 1 {
		t.Errorf("flagged = %d, want 1", sum.Flagged)
	}
	n, err := store.CountQuestions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("store has %d questions, want 1", n)
	}
}

func TestImportMissingColumnsDefaultEmpty(t *testing.T) {
	store := newTestStore(t)
	path := writeCSV(t, `Question,Option A,Option B,Option C,Option D,Answer
only the core columns,1,2,3,4,B
`)
	sum, err := importer.File(context.Background(), store, path)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Inserted != 1 {
		t.Fatalf("summary = %+v, want 1 inserted", sum)
	}
	want := map[string]bool{"Subject": true, "Chapter": true, "Topic": true, "Difficulty": true, "Type": true}
	if len(sum.Missing) != len(want) {
		t.Errorf("missing = %v, want the five tag columns", sum.Missing)
	}
	for _, m := range sum.Missing {
		if !want[m] {
			t.Errorf("unexpected missing column %q", m)
		}
	}
}
