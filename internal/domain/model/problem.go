package model

import (
	"fmt"
	"time"
)

// RawProblem is one entry of the upstream problemset catalog.
type RawProblem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Rating    int      `json:"rating,omitempty"`
	Tags      []string `json:"tags"`
}

// ID is the composite contest/problem identifier, e.g. "1850-A".
func (p RawProblem) ID() string {
	return fmt.Sprintf("%d-%s", p.ContestID, p.Index)
}

func (p RawProblem) Rated() bool {
	return p.Rating > 0
}

// CatalogSnapshot is the cached copy of the whole upstream catalog.
type CatalogSnapshot struct {
	Problems  []RawProblem `json:"problems"`
	FetchedAt int64        `json:"fetchedAt"` // unix milliseconds
}

func (c *CatalogSnapshot) FetchedTime() time.Time {
	return time.UnixMilli(c.FetchedAt)
}

// ProblemMetadata is the enriched, cached view of a single problem.
type ProblemMetadata struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Difficulty int      `json:"difficulty,omitempty"`
	Statement  string   `json:"statement"`
	Tags       []string `json:"tags"`
	URL        string   `json:"url"`
	FetchedAt  int64    `json:"fetchedAt"` // unix milliseconds
}

// Playable reports whether the problem has at least one recognized tag.
func (m *ProblemMetadata) Playable() bool {
	return len(m.Tags) > 0
}

type TagOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ProblemView is what a player sees: everything but the answer.
type ProblemView struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Difficulty    int         `json:"difficulty,omitempty"`
	Statement     string      `json:"statement"`
	URL           string      `json:"url"`
	AvailableTags []TagOption `json:"availableTags"`
}

func (m *ProblemMetadata) View() ProblemView {
	return ProblemView{
		ID:            m.ID,
		Title:         m.Title,
		Slug:          m.Slug,
		Difficulty:    m.Difficulty,
		Statement:     m.Statement,
		URL:           m.URL,
		AvailableTags: TagOptions(),
	}
}
