package model

import "time"

// Attempt is one graded guess. Attempts are only ever appended.
type Attempt struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	ProblemID    string    `json:"problem_id"`
	Correct      bool      `json:"correct"`
	SelectedTags []string  `json:"selected_tags"`
	CorrectTags  []string  `json:"correct_tags"`
	CreatedAt    time.Time `json:"created_at"`
}

type AttemptResult struct {
	Correct     bool     `json:"correct"`
	CorrectTags []string `json:"correctTags"`
	Score       int      `json:"score"`
}
