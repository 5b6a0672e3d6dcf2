package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run is one batch grading pass over all solvers and inputs.
type Run struct {
	ID         uuid.UUID  `gorm:"primary_key;type:uuid;default:uuid_generate_v4()" json:"id"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Solvers and Inputs are the counts discovered when the run started.
	Solvers int `gorm:"not null" json:"solvers"`
	Inputs  int `gorm:"not null" json:"inputs"`
}

// RunRecord is the graded outcome of one (solver, input) pair.
type RunRecord struct {
	ID    uuid.UUID `gorm:"primary_key;type:uuid;default:uuid_generate_v4()" json:"id"`
	RunID uuid.UUID `gorm:"type:uuid;index;not null" json:"run_id"`

	Solver string         `gorm:"not null" json:"solver"`
	Input  string         `gorm:"not null" json:"input"`
	Tags   pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	// Value is the total collected value; zero for rejected outputs.
	Value    float64 `gorm:"not null" json:"value"`
	Feasible bool    `gorm:"not null" json:"feasible"`

	// Normalized is Value divided by the input's reference best value,
	// when the manifest provides one.
	Normalized *float64 `json:"normalized,omitempty"`

	// Comment is the verbatim grading message.
	Comment string `json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

// CreateRun inserts a new run started now.
func CreateRun(db *gorm.DB, solvers, inputs int) (*Run, error) {
	run := &Run{StartedAt: time.Now(), Solvers: solvers, Inputs: inputs}
	err := db.Create(run).Error
	return run, err
}

// FinishRun stamps the run as finished.
func FinishRun(db *gorm.DB, run *Run) error {
	now := time.Now()
	run.FinishedAt = &now
	return db.Save(run).Error
}

// GetRunByID returns a run by ID.
func GetRunByID(db *gorm.DB, id uuid.UUID) (*Run, error) {
	var run Run
	err := db.Where("id = ?", id).First(&run).Error
	return &run, err
}

// ListRuns returns all runs, newest first.
func ListRuns(db *gorm.DB) ([]Run, error) {
	var runs []Run
	err := db.Order("started_at DESC").Find(&runs).Error
	return runs, err
}

// CreateRunRecord inserts a graded record.
func CreateRunRecord(db *gorm.DB, rec *RunRecord) error {
	return db.Create(rec).Error
}

// ListRunRecords returns the records of a run, optionally filtered by solver.
func ListRunRecords(db *gorm.DB, runID uuid.UUID, solver string) ([]RunRecord, error) {
	var records []RunRecord
	q := db.Where("run_id = ?", runID)
	if solver != "" {
		q = q.Where("solver = ?", solver)
	}
	err := q.Order("created_at").Find(&records).Error
	return records, err
}
