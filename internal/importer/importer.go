// Package importer bulk-loads multiple-choice questions from a
// spreadsheet, matching column headers tolerantly against an alias table.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

// Canonical column names, in sheet order.
const (
	ColQuestion   = "Question"
	ColOptionA    = "Option A"
	ColOptionB    = "Option B"
	ColOptionC    = "Option C"
	ColOptionD    = "Option D"
	ColAnswer     = "Answer"
	ColSubject    = "Subject"
	ColChapter    = "Chapter"
	ColTopic      = "Topic"
	ColDifficulty = "Difficulty"
	ColType       = "Type"
)

var canonical = []string{
	ColQuestion, ColOptionA, ColOptionB, ColOptionC, ColOptionD,
	ColAnswer, ColSubject, ColChapter, ColTopic, ColDifficulty, ColType,
}

// aliases maps each canonical column to the source headers accepted for
// it. Matching is case-, space-, underscore- and hyphen-insensitive, so
// most spelling variants are covered by the canonical name itself.
var aliases = map[string][]string{
	ColQuestion: {"Q", "Question Text", "question_text"},
	ColOptionA:  {"OptionA", "A", "opt a", "opt_a", "option_a"},
	ColOptionB:  {"OptionB", "B", "opt b", "opt_b", "option_b"},
	ColOptionC:  {"OptionC", "C", "opt c", "opt_c", "option_c"},
	ColOptionD:  {"OptionD", "D", "opt d", "opt_d", "option_d"},
	ColAnswer:   {"Ans", "Correct Answer", "Correct", "answer_key", "answer_option"},
}

// Summary reports what one import run did.
type Summary struct {
	Rows     int      `json:"rows"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"` // duplicates and blank questions
	Flagged  int      `json:"flagged"` // answers that did not resolve to A-D
	Missing  []string `json:"missing_columns,omitempty"`
}

// File imports the spreadsheet at path. .xlsx is read via excelize,
// anything else is treated as CSV. Missing columns default to empty
// strings; rows whose answer cannot be resolved to an option letter are
// rejected and counted as flagged.
func File(ctx context.Context, store quiz.Store, path string) (Summary, error) {
	rows, err := readRows(path)
	if err != nil {
		return Summary{}, err
	}
	if len(rows) == 0 {
		return Summary{}, errors.New("spreadsheet has no header row")
	}

	cols, missing := resolveColumns(rows[0])
	sum := Summary{Missing: missing}

	for _, row := range rows[1:] {
		sum.Rows++
		q := quiz.Question{
			Text:       field(row, cols, ColQuestion),
			OptionA:    field(row, cols, ColOptionA),
			OptionB:    field(row, cols, ColOptionB),
			OptionC:    field(row, cols, ColOptionC),
			OptionD:    field(row, cols, ColOptionD),
			Answer:     field(row, cols, ColAnswer),
			Subject:    field(row, cols, ColSubject),
			Chapter:    field(row, cols, ColChapter),
			Topic:      field(row, cols, ColTopic),
			Difficulty: field(row, cols, ColDifficulty),
			Type:       field(row, cols, ColType),
		}
		inserted, err := store.AddQuestion(ctx, q)
		switch {
		case errors.Is(err, quiz.ErrEmptyQuestion):
			sum.Skipped++
		case errors.Is(err, quiz.ErrBadAnswer):
			sum.Flagged++
		case err != nil:
			return sum, fmt.Errorf("row %d: %w", sum.Rows, err)
		case inserted:
			sum.Inserted++
		default:
			sum.Skipped++ // duplicate question text
		}
	}
	return sum, nil
}

func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		return f.GetRows(sheets[0])
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// resolveColumns matches the header row against the alias table once, up
// front. It returns canonical name -> column index, plus the canonical
// columns that have no source column at all.
func resolveColumns(header []string) (map[string]int, []string) {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = normalizeHeader(h)
	}

	cols := make(map[string]int, len(canonical))
	var missing []string
	for _, want := range canonical {
		idx := -1
		for _, cand := range append([]string{want}, aliases[want]...) {
			for i, h := range norm {
				if h == normalizeHeader(cand) {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			missing = append(missing, want)
			continue
		}
		cols[want] = idx
	}
	return cols, missing
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	h = strings.ReplaceAll(h, "-", " ")
	return strings.Join(strings.Fields(h), " ")
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
