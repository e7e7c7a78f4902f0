package models

import "time"

// Rating is a single user's score for a teaching assignment.
// One rating per (user, assignment); never updated or deleted.
type Rating struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AssignmentID string    `db:"assignment_id" json:"assignment_id"`
	Score        int       `db:"score" json:"score"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AggregateResult is the presentable outcome of averaging ratings.
type AggregateResult struct {
	HasRating bool   `json:"has_rating"`
	Value     int    `json:"value,omitempty"`
	Display   string `json:"display"`
}

// ProfessorRating pairs a professor with their overall aggregate.
type ProfessorRating struct {
	ProfessorID   string `json:"professor_id"`
	ProfessorName string `json:"professor_name"`
	Rating        string `json:"rating"`
}

// ProfessorModuleRating is the aggregate of one professor across all
// instances of one module.
type ProfessorModuleRating struct {
	ProfessorID   string `json:"professor_id"`
	ProfessorName string `json:"professor_name"`
	ModuleCode    string `json:"module_code"`
	ModuleName    string `json:"module_name"`
	Rating        string `json:"rating"`
}
