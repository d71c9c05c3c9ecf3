package repository

import (
	"context"
	"database/sql"
	"time"
)

// Project statuses accepted by the store. The default applies whenever a
// write omits the status or sends an empty string.
const DefaultProjectStatus = "En cours"

var projectStatuses = map[string]bool{
	"En cours": true,
	"Terminée": true,
	"Annulée":  true,
}

// Project mirrors the 'projects' table. Latitude/longitude stay nil until
// geocoding resolves the address; owner_id is nil for admin-held projects.
type Project struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Type      string    `json:"type"`
	Power     string    `json:"power"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Comments  string    `json:"comments"`
	OwnerID   *uint64   `json:"owner_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectInput carries the writable fields for create and full-replace
// update. Status is normalized with normalizeProjectStatus before use.
type ProjectInput struct {
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	Type      string
	Power     string
	Phone     string
	Email     string
	Comments  string
	OwnerID   *uint64
	Status    string
}

type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

func normalizeProjectStatus(s string) (string, error) {
	if s == "" {
		return DefaultProjectStatus, nil
	}
	if !projectStatuses[s] {
		return "", ErrInvalidStatus
	}
	return s, nil
}

const projectCols = "id,name,address,latitude,longitude,type,power,phone,email,comments,owner_id,status,created_at,updated_at"

func scanProject(row interface{ Scan(...any) error }) (Project, error) {
	var p Project
	var comments sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude,
		&p.Type, &p.Power, &p.Phone, &p.Email, &comments,
		&p.OwnerID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	p.Comments = comments.String
	return p, err
}

// Create inserts a project and returns the stored row.
func (r *ProjectRepo) Create(ctx context.Context, in ProjectInput) (Project, error) {
	st, err := normalizeProjectStatus(in.Status)
	if err != nil {
		return Project{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO projects (name,address,latitude,longitude,type,power,phone,email,comments,owner_id,status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		in.Name, in.Address, in.Latitude, in.Longitude, in.Type, in.Power,
		in.Phone, in.Email, in.Comments, in.OwnerID, st)
	if err != nil {
		return Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Project{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update performs a full-replace write of every listed field (last write
// wins, no version check) and returns the stored row.
func (r *ProjectRepo) Update(ctx context.Context, id uint64, in ProjectInput) (Project, error) {
	st, err := normalizeProjectStatus(in.Status)
	if err != nil {
		return Project{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE projects SET name=?,address=?,latitude=?,longitude=?,type=?,power=?,phone=?,email=?,comments=?,owner_id=?,status=?
		 WHERE id=?`,
		in.Name, in.Address, in.Latitude, in.Longitude, in.Type, in.Power,
		in.Phone, in.Email, in.Comments, in.OwnerID, st, id)
	if err != nil {
		return Project{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the project row. Steps, custom fields, investor links,
// milestones and invitations go with it through ON DELETE CASCADE.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
	return err
}

// GetByID fetches a single project.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (Project, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+projectCols+" FROM projects WHERE id=? LIMIT 1", id)
	return scanProject(row)
}

// ListAll returns every project (admin view).
func (r *ProjectRepo) ListAll(ctx context.Context) ([]Project, error) {
	return r.list(ctx, "SELECT "+projectCols+" FROM projects ORDER BY id")
}

// ListByOwner returns the projects owned by one user.
func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]Project, error) {
	return r.list(ctx, "SELECT "+projectCols+" FROM projects WHERE owner_id=? ORDER BY id", ownerID)
}

// ListRecentlyUpdated returns the most recently touched projects for the
// activity feed.
func (r *ProjectRepo) ListRecentlyUpdated(ctx context.Context, limit int) ([]Project, error) {
	return r.list(ctx, "SELECT "+projectCols+" FROM projects ORDER BY updated_at DESC LIMIT ?", limit)
}

func (r *ProjectRepo) list(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
