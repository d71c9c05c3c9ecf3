package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/domsolaire/solar-crm/internal/status"
)

// Milestone mirrors the 'investor_milestones' table: a dated, status-tracked
// commitment tied to one investor's involvement in one project. ProjectName
// and InvestorName are only populated by the dashboard queries.
type Milestone struct {
	ID           uint64     `json:"id"`
	ProjectID    uint64     `json:"project_id"`
	InvestorID   uint64     `json:"investor_id"`
	Label        string     `json:"label"`
	DueDate      *time.Time `json:"due_date"`
	Status       *string    `json:"status"`
	Comment      *string    `json:"comment"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ProjectName  string     `json:"project_name,omitempty"`
	InvestorName string     `json:"investor_name,omitempty"`
}

// MilestonePatch carries a partial update. A nil pointer means "leave the
// column alone"; a pointer to the empty string means "set it to NULL".
type MilestonePatch struct {
	Label   *string
	DueDate *string
	Status  *string
	Comment *string
}

type MilestoneRepo struct{ DB *sql.DB }

func NewMilestoneRepo(db *sql.DB) *MilestoneRepo { return &MilestoneRepo{DB: db} }

// validStatus accepts absent or empty status (stored as NULL) and otherwise
// requires one of the four canonical labels.
func validStatus(s *string) bool {
	return s == nil || *s == "" || status.IsCanonical(*s)
}

// buildMilestoneSet turns a patch into a SET clause and its arguments.
// updated_at is refreshed whenever at least one column is written. An empty
// clause means there is nothing to apply.
func buildMilestoneSet(p MilestonePatch) (string, []any) {
	sets := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		sets = append(sets, col+"=?")
		if *v == "" {
			args = append(args, nil)
		} else {
			args = append(args, *v)
		}
	}
	add("label", p.Label)
	add("due_date", p.DueDate)
	add("status", p.Status)
	add("comment", p.Comment)
	if len(sets) == 0 {
		return "", nil
	}
	sets = append(sets, "updated_at=NOW()")
	return strings.Join(sets, ", "), args
}

const milestoneCols = "id,project_id,investor_id,label,due_date,status,comment,created_at,updated_at"

func scanMilestone(row interface{ Scan(...any) error }) (Milestone, error) {
	var m Milestone
	err := row.Scan(&m.ID, &m.ProjectID, &m.InvestorID, &m.Label, &m.DueDate,
		&m.Status, &m.Comment, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Add inserts a milestone for a (project, investor) pair. The status must be
// one of the four canonical labels; empty or absent values are stored NULL.
func (r *MilestoneRepo) Add(ctx context.Context, projectID, investorID uint64, label string, dueDate, st, comment *string) (Milestone, error) {
	if !validStatus(st) {
		return Milestone{}, ErrInvalidStatus
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO investor_milestones (project_id, investor_id, label, due_date, status, comment) VALUES (?,?,?,?,?,?)",
		projectID, investorID, label, emptyToNil(dueDate), emptyToNil(st), emptyToNil(comment))
	if err != nil {
		return Milestone{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Milestone{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// ListByPair returns all milestones of one (project, investor) pair, most
// relevant date first (due date when set, otherwise creation time).
func (r *MilestoneRepo) ListByPair(ctx context.Context, projectID, investorID uint64) ([]Milestone, error) {
	return r.list(ctx,
		`SELECT `+milestoneCols+` FROM investor_milestones
		  WHERE project_id=? AND investor_id=?
		  ORDER BY COALESCE(due_date, created_at) DESC, id DESC`,
		projectID, investorID)
}

// GetByID fetches one milestone without ownership checks.
func (r *MilestoneRepo) GetByID(ctx context.Context, id uint64) (Milestone, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+milestoneCols+" FROM investor_milestones WHERE id=? LIMIT 1", id)
	return scanMilestone(row)
}

// UpdateScoped applies a partial update, first requiring that the milestone
// belongs to the given (project, investor) pair. An empty patch returns the
// current row without writing (updated_at untouched). A milestone outside
// the pair, or an unknown id, yields sql.ErrNoRows.
func (r *MilestoneRepo) UpdateScoped(ctx context.Context, projectID, investorID, id uint64, patch MilestonePatch) (Milestone, error) {
	if !validStatus(patch.Status) {
		return Milestone{}, ErrInvalidStatus
	}
	set, args := buildMilestoneSet(patch)
	if set == "" {
		return r.GetScoped(ctx, projectID, investorID, id)
	}
	args = append(args, id, projectID, investorID)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE investor_milestones SET "+set+" WHERE id=? AND project_id=? AND investor_id=?",
		args...); err != nil {
		return Milestone{}, err
	}
	return r.GetScoped(ctx, projectID, investorID, id)
}

// UpdateByID is the flat variant kept for route compatibility: same partial
// update semantics, no ownership re-validation.
func (r *MilestoneRepo) UpdateByID(ctx context.Context, id uint64, patch MilestonePatch) (Milestone, error) {
	if !validStatus(patch.Status) {
		return Milestone{}, ErrInvalidStatus
	}
	set, args := buildMilestoneSet(patch)
	if set == "" {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE investor_milestones SET "+set+" WHERE id=?", args...); err != nil {
		return Milestone{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes one milestone by id.
func (r *MilestoneRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM investor_milestones WHERE id=?", id)
	return err
}

// Upcoming returns dated milestones due today or later that still expect a
// payment ("Pas payé" or "En cours"), soonest first, capped at 100.
func (r *MilestoneRepo) Upcoming(ctx context.Context) ([]Milestone, error) {
	return r.listJoined(ctx,
		`WHERE m.due_date IS NOT NULL
		   AND m.due_date >= CURDATE()
		   AND m.status IN ('Pas payé','En cours')`)
}

// Overdue returns dated milestones strictly past due that are neither paid
// nor cancelled, oldest due date first, capped at 100. NULL statuses count
// as still open.
func (r *MilestoneRepo) Overdue(ctx context.Context) ([]Milestone, error) {
	return r.listJoined(ctx,
		`WHERE m.due_date IS NOT NULL
		   AND m.due_date < CURDATE()
		   AND (m.status IS NULL OR m.status NOT IN ('Payé','Annulé'))`)
}

func (r *MilestoneRepo) listJoined(ctx context.Context, where string) ([]Milestone, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.project_id, m.investor_id, m.label, m.due_date, m.status, m.comment,
		        m.created_at, m.updated_at, p.name, COALESCE(i.name, '')
		   FROM investor_milestones m
		   JOIN projects p ON p.id = m.project_id
		   LEFT JOIN investors i ON i.id = m.investor_id
		  `+where+`
		  ORDER BY m.due_date ASC, m.id ASC
		  LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := []Milestone{}
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.InvestorID, &m.Label, &m.DueDate,
			&m.Status, &m.Comment, &m.CreatedAt, &m.UpdatedAt,
			&m.ProjectName, &m.InvestorName); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (r *MilestoneRepo) list(ctx context.Context, query string, args ...any) ([]Milestone, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := []Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// GetScoped fetches one milestone constrained to its (project, investor) pair.
func (r *MilestoneRepo) GetScoped(ctx context.Context, projectID, investorID, id uint64) (Milestone, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+milestoneCols+" FROM investor_milestones WHERE id=? AND project_id=? AND investor_id=? LIMIT 1",
		id, projectID, investorID)
	return scanMilestone(row)
}

// emptyToNil maps absent or empty optional strings to SQL NULL.
func emptyToNil(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
