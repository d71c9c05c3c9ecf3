package repository

import (
	"context"
	"database/sql"
	"time"
)

// Investor mirrors the 'investors' table. Investors are a master list
// independent of any project; only the name is required.
type Investor struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Company   *string   `json:"company"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	// Role is only populated when listing investors through a project link.
	Role *string `json:"role,omitempty"`
}

type InvestorRepo struct{ DB *sql.DB }

func NewInvestorRepo(db *sql.DB) *InvestorRepo { return &InvestorRepo{DB: db} }

const investorCols = "id,name,company,email,phone,notes,created_at"

func scanInvestor(row interface{ Scan(...any) error }) (Investor, error) {
	var i Investor
	err := row.Scan(&i.ID, &i.Name, &i.Company, &i.Email, &i.Phone, &i.Notes, &i.CreatedAt)
	return i, err
}

// Create inserts an investor; all fields but the name may be nil.
func (r *InvestorRepo) Create(ctx context.Context, name string, company, email, phone, notes *string) (Investor, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO investors (name, company, email, phone, notes) VALUES (?,?,?,?,?)",
		name, company, email, phone, notes)
	if err != nil {
		return Investor{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Investor{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one investor.
func (r *InvestorRepo) GetByID(ctx context.Context, id uint64) (Investor, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+investorCols+" FROM investors WHERE id=? LIMIT 1", id)
	return scanInvestor(row)
}

// ListAll returns the master list, alphabetical by name.
func (r *InvestorRepo) ListAll(ctx context.Context) ([]Investor, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+investorCols+" FROM investors ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	investors := []Investor{}
	for rows.Next() {
		i, err := scanInvestor(rows)
		if err != nil {
			return nil, err
		}
		investors = append(investors, i)
	}
	return investors, rows.Err()
}

// Update rewrites every investor field.
func (r *InvestorRepo) Update(ctx context.Context, id uint64, name string, company, email, phone, notes *string) (Investor, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE investors SET name=?, company=?, email=?, phone=?, notes=? WHERE id=?",
		name, company, email, phone, notes, id)
	if err != nil {
		return Investor{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an investor from the master list. Links cascade away;
// milestone rows keep their investor_id for history.
func (r *InvestorRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM investors WHERE id=?", id)
	return err
}

// Attach links an investor to a project. The (project_id, investor_id) pair
// is unique, so re-attaching an already linked investor only updates the
// role instead of erroring or duplicating the link.
func (r *InvestorRepo) Attach(ctx context.Context, projectID, investorID uint64, role *string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO project_investors (project_id, investor_id, role)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE role=VALUES(role)`,
		projectID, investorID, role)
	return err
}

// Detach removes the link row only. Milestones for the pair survive so the
// payment history is preserved.
func (r *InvestorRepo) Detach(ctx context.Context, projectID, investorID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM project_investors WHERE project_id=? AND investor_id=?",
		projectID, investorID)
	return err
}

// ListByProject returns the investors linked to a project with their role,
// alphabetical by name. The unique link key guarantees no duplicates.
func (r *InvestorRepo) ListByProject(ctx context.Context, projectID uint64) ([]Investor, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT i.id, i.name, i.company, i.email, i.phone, i.notes, i.created_at, pi.role
		   FROM project_investors pi
		   JOIN investors i ON i.id = pi.investor_id
		  WHERE pi.project_id = ?
		  ORDER BY i.name ASC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	investors := []Investor{}
	for rows.Next() {
		var i Investor
		if err := rows.Scan(&i.ID, &i.Name, &i.Company, &i.Email, &i.Phone, &i.Notes, &i.CreatedAt, &i.Role); err != nil {
			return nil, err
		}
		investors = append(investors, i)
	}
	return investors, rows.Err()
}
