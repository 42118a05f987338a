// Bulk question import: reads a spreadsheet (.xlsx or .csv) of
// multiple-choice questions into the store. Duplicate question text is
// skipped; answers that do not resolve to A-D are rejected and counted.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/smartlearn-ai/smartlearn/internal/config"
	"github.com/smartlearn-ai/smartlearn/internal/db"
	"github.com/smartlearn-ai/smartlearn/internal/importer"
	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

func main() {
	path := flag.String("file", "questions.xlsx", "spreadsheet to import (.xlsx or .csv)")
	flag.Parse()
	if flag.NArg() > 0 {
		*path = flag.Arg(0)
	}

	cfg := config.FromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()
	store := quiz.NewSQLStore(dbh)

	log.Printf("reading %s", *path)
	sum, err := importer.File(ctx, store, *path)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	if len(sum.Missing) > 0 {
		log.Printf("warning: spreadsheet missing columns: %s", strings.Join(sum.Missing, ", "))
	}
	log.Printf("done: rows=%d inserted=%d skipped=%d flagged=%d",
		sum.Rows, sum.Inserted, sum.Skipped, sum.Flagged)

	total, err := store.CountQuestions(ctx)
	if err != nil {
		log.Fatalf("count questions: %v", err)
	}
	log.Printf("total questions in store: %d", total)
}
