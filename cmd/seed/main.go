// Seeds synthetic attempt data for demo students, or with -check prints
// row counts for the durable tables.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/smartlearn-ai/smartlearn/internal/config"
	"github.com/smartlearn-ai/smartlearn/internal/db"
	"github.com/smartlearn-ai/smartlearn/internal/quiz"
	"github.com/smartlearn-ai/smartlearn/internal/seed"
)

func main() {
	check := flag.Bool("check", false, "print table counts and exit")
	students := flag.String("students", "", "comma-separated student ids (default demo students)")
	per := flag.Int("attempts", 8, "attempts to seed per student")
	flag.Parse()

	cfg := config.FromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	if *check {
		counts, err := seed.Counts(ctx, dbh)
		if err != nil {
			log.Fatalf("check failed: %v", err)
		}
		for _, t := range []string{"questions", "student_scores", "reminders", "users"} {
			log.Printf("%s: %d rows", t, counts[t])
		}
		return
	}

	var ids []string
	if *students != "" {
		for _, s := range strings.Split(*students, ",") {
			if s = strings.TrimSpace(s); s != "" {
				ids = append(ids, s)
			}
		}
	}

	store := quiz.NewSQLStore(dbh)
	if err := seed.Demo(ctx, dbh, store, ids, *per); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	if len(ids) == 0 {
		ids = seed.DefaultStudents
	}
	log.Printf("seeded %d attempts each for: %s", *per, strings.Join(ids, ", "))
}
