package models

import "time"

// TeachingAssignment links a professor to a module instance.
// A professor can be assigned to a given instance at most once.
type TeachingAssignment struct {
	ID               string    `db:"id" json:"id"`
	ModuleInstanceID string    `db:"module_instance_id" json:"module_instance_id"`
	ProfessorID      string    `db:"professor_id" json:"professor_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// AssignmentFilter narrows assignment listings. Nil fields match everything;
// supplied fields combine with AND.
type AssignmentFilter struct {
	ModuleInstanceID *string
	ProfessorID      *string
}

// AssignmentDetail joins an assignment with its professor for display.
type AssignmentDetail struct {
	ID               string `db:"id"`
	ModuleInstanceID string `db:"module_instance_id"`
	ProfessorID      string `db:"professor_id"`
	ProfessorName    string `db:"professor_name"`
}
