package quiz

import "time"

type Question struct {
	ID         int64  `json:"id"`
	Text       string `json:"question"`
	OptionA    string `json:"option_a"`
	OptionB    string `json:"option_b"`
	OptionC    string `json:"option_c"`
	OptionD    string `json:"option_d"`
	Answer     string `json:"answer,omitempty"` // option letter; stripped when served to students
	Subject    string `json:"subject"`
	Chapter    string `json:"chapter"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"` // Easy|Medium|Hard
	Type       string `json:"type"`       // free-text category, e.g. Conceptual/Numerical
}

// Options returns the four option texts in letter order.
func (q Question) Options() [4]string {
	return [4]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// Answered is one graded answer heading into the attempt log.
type Answered struct {
	QuestionID int64 `json:"question_id"`
	Correct    bool  `json:"correct"`
}

type Reminder struct {
	ID           int64     `json:"id"`
	StudentID    string    `json:"student_id"`
	WeakChapters string    `json:"weak_chapters"` // comma-joined chapter names
	Text         string    `json:"reminder_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChapterStat is one row of a per-chapter accuracy aggregate.
type ChapterStat struct {
	Chapter string  `json:"chapter"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Acc     float64 `json:"accuracy"` // percent
}

type SubjectStat struct {
	Subject string  `json:"subject"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Acc     float64 `json:"accuracy"`
}

// StudentStat is one leaderboard row: per-student accuracy and volume.
type StudentStat struct {
	StudentID string  `json:"student"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Acc       float64 `json:"accuracy"`
}

// OverallStat is a single student's whole-history aggregate.
type OverallStat struct {
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Acc       float64 `json:"accuracy"`
}

// TrendPoint is the running-mean accuracy after one attempt, ordered by
// attempt id.
type TrendPoint struct {
	AttemptID  int64   `json:"attempt_id"`
	Cumulative float64 `json:"cumulative_accuracy"`
}
