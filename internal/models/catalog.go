package models

// Professor represents a lecturer identified by a short external code.
type Professor struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Module represents a course module identified by a short external code.
type Module struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// ModuleInstance is one scheduled delivery of a module in a given
// year and semester. The (module_code, year, semester) triple is unique.
type ModuleInstance struct {
	ID         string `db:"id" json:"id"`
	ModuleCode string `db:"module_code" json:"module_code"`
	Year       int    `db:"year" json:"year"`
	Semester   int    `db:"semester" json:"semester"`
}

// Offering is the list-view projection of a module instance together
// with the professors teaching it.
type Offering struct {
	ModuleCode string   `json:"module_code"`
	ModuleName string   `json:"module_name"`
	Year       int      `json:"year"`
	Semester   int      `json:"semester"`
	TaughtBy   []string `json:"taught_by"`
}

// ModuleInstanceRow joins a module instance with its module name for listing.
type ModuleInstanceRow struct {
	ID         string `db:"id"`
	ModuleCode string `db:"module_code"`
	ModuleName string `db:"module_name"`
	Year       int    `db:"year"`
	Semester   int    `db:"semester"`
}
