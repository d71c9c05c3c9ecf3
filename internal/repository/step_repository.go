package repository

import (
	"context"
	"database/sql"
	"time"
)

// Step mirrors the 'project_steps' table: one dated entry in a project's
// progress timeline. Status is free text by convention ("OK", "En Cours",
// "Annulé"); nothing is enforced here.
type Step struct {
	ID          uint64     `json:"id"`
	ProjectID   uint64     `json:"project_id"`
	Label       string     `json:"label"`
	StepDate    *time.Time `json:"step_date"`
	StepComment string     `json:"step_comment"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type StepRepo struct{ DB *sql.DB }

func NewStepRepo(db *sql.DB) *StepRepo { return &StepRepo{DB: db} }

// Add appends a step to a project's timeline. stepDate is a "2006-01-02"
// string or nil for undated steps.
func (r *StepRepo) Add(ctx context.Context, projectID uint64, label string, stepDate *string, comment, status string) (Step, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO project_steps (project_id, label, step_date, step_comment, status) VALUES (?,?,?,?,?)",
		projectID, label, stepDate, comment, status)
	if err != nil {
		return Step{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Step{}, err
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT id,project_id,label,step_date,step_comment,status,created_at FROM project_steps WHERE id=? LIMIT 1", id)
	return scanStep(row)
}

// ListByProject returns a project's steps newest-dated first. MySQL sorts
// NULL step_date last under DESC, which is the documented behavior.
func (r *StepRepo) ListByProject(ctx context.Context, projectID uint64) ([]Step, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,project_id,label,step_date,step_comment,status,created_at FROM project_steps WHERE project_id=? ORDER BY step_date DESC",
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := []Step{}
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// Delete removes one step by id.
func (r *StepRepo) Delete(ctx context.Context, stepID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM project_steps WHERE id=?", stepID)
	return err
}

func scanStep(row interface{ Scan(...any) error }) (Step, error) {
	var s Step
	var comment sql.NullString
	err := row.Scan(&s.ID, &s.ProjectID, &s.Label, &s.StepDate, &comment, &s.Status, &s.CreatedAt)
	s.StepComment = comment.String
	return s, err
}
