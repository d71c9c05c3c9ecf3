package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/domsolaire/solar-crm/internal/utils"
)

// Invitation mirrors the 'invitations' table: a time-boxed, unguessable
// credential granting unauthenticated read access to one project. Rows are
// never updated after creation; a project may hold several live invitations.
type Invitation struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationTTL is how long a share link stays valid.
const InvitationTTL = 7 * 24 * time.Hour

type InvitationRepo struct{ DB *sql.DB }

func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{DB: db} }

// Create generates a fresh share token with a 7-day expiry and persists it.
func (r *InvitationRepo) Create(ctx context.Context, projectID uint64, email string) (Invitation, error) {
	token, err := utils.NewShareToken()
	if err != nil {
		return Invitation{}, err
	}
	expires := time.Now().UTC().Add(InvitationTTL)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO invitations (project_id, email, token, expires_at) VALUES (?,?,?,?)",
		projectID, email, token, expires)
	if err != nil {
		return Invitation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Invitation{}, err
	}
	var inv Invitation
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,project_id,email,token,expires_at,created_at FROM invitations WHERE id=? LIMIT 1",
		id).Scan(&inv.ID, &inv.ProjectID, &inv.Email, &inv.Token, &inv.ExpiresAt, &inv.CreatedAt)
	return inv, err
}

// ProjectByToken resolves a non-expired token to its project. Unknown and
// expired tokens both come back as sql.ErrNoRows; callers must not reveal
// which case it was.
func (r *InvitationRepo) ProjectByToken(ctx context.Context, token string) (Project, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT p.id,p.name,p.address,p.latitude,p.longitude,p.type,p.power,p.phone,p.email,p.comments,p.owner_id,p.status,p.created_at,p.updated_at
		   FROM projects p
		   JOIN invitations i ON p.id = i.project_id
		  WHERE i.token = ? AND i.expires_at > NOW()
		  LIMIT 1`,
		token)
	return scanProject(row)
}
