package models

import "time"

// CohortSnapshot is a persisted copy of the grouped cohorts, used when the
// primary source is unreachable.
type CohortSnapshot struct {
	ID        string       `bson:"_id" json:"id"`
	Source    string       `bson:"source" json:"source"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
	Cohorts   []YearCohort `bson:"cohorts" json:"cohorts"`
}

// YearImportCount is the number of companies stored for one year.
type YearImportCount struct {
	Year      int `json:"year"`
	Companies int `json:"companies"`
}

// ImportSummary reports the outcome of a dataset import.
type ImportSummary struct {
	RunID     string            `json:"runId"`
	Imported  int               `json:"imported"`
	Skipped   int               `json:"skipped"`
	PerYear   []YearImportCount `json:"perYear"`
	StartedAt time.Time         `json:"startedAt"`
	Duration  time.Duration     `json:"duration"`
}
