package quiz

import (
	"context"
	"fmt"
	"strings"
)

// WeakChapterLimit is how many chapters a reminder calls out.
const WeakChapterLimit = 3

// GenerateReminder persists a templated reminder naming the student's
// weakest chapters. When the student has no attempt history there is
// nothing to advise, so no record is written and ok is false.
//
// Reminders are append-only: repeated generation appends a new record even
// when the content is identical to the last one.
func GenerateReminder(ctx context.Context, store Store, studentID string) (weak []string, ok bool, err error) {
	stats, err := store.WeakestChapters(ctx, studentID, WeakChapterLimit)
	if err != nil {
		return nil, false, err
	}
	if len(stats) == 0 {
		return nil, false, nil
	}
	chapters := make([]string, len(stats))
	for i, st := range stats {
		chapters[i] = st.Chapter
	}
	text := fmt.Sprintf("Please revise: %s. Recommended: take adaptive tests this week.",
		strings.Join(chapters, ", "))
	if err := store.SaveReminder(ctx, studentID, chapters, text); err != nil {
		return nil, false, err
	}
	return chapters, true, nil
}
