package repository

import (
	"context"
	"database/sql"
	"time"
)

// CustomField mirrors the 'project_custom_fields' table. Duplicate
// field_name values on one project are allowed by design; fields are an
// open key/value extension, not a map.
type CustomField struct {
	ID         uint64    `json:"id"`
	ProjectID  uint64    `json:"project_id"`
	FieldName  string    `json:"field_name"`
	FieldValue string    `json:"field_value"`
	AddedBy    *uint64   `json:"added_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type CustomFieldRepo struct{ DB *sql.DB }

func NewCustomFieldRepo(db *sql.DB) *CustomFieldRepo { return &CustomFieldRepo{DB: db} }

// Add inserts a field on a project, recording who added it when known.
func (r *CustomFieldRepo) Add(ctx context.Context, projectID uint64, name, value string, addedBy *uint64) (CustomField, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO project_custom_fields (project_id, field_name, field_value, added_by) VALUES (?,?,?,?)",
		projectID, name, value, addedBy)
	if err != nil {
		return CustomField{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return CustomField{}, err
	}
	return r.getByID(ctx, uint64(id))
}

// ListByProject returns all fields of a project in insertion order.
func (r *CustomFieldRepo) ListByProject(ctx context.Context, projectID uint64) ([]CustomField, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,project_id,field_name,field_value,added_by,created_at FROM project_custom_fields WHERE project_id=? ORDER BY id",
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []CustomField{}
	for rows.Next() {
		f, err := scanCustomField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// Update rewrites name and value of a field addressed by its global id.
func (r *CustomFieldRepo) Update(ctx context.Context, fieldID uint64, name, value string) (CustomField, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE project_custom_fields SET field_name=?, field_value=? WHERE id=?",
		name, value, fieldID)
	if err != nil {
		return CustomField{}, err
	}
	return r.getByID(ctx, fieldID)
}

// Delete removes a field by its global id.
func (r *CustomFieldRepo) Delete(ctx context.Context, fieldID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM project_custom_fields WHERE id=?", fieldID)
	return err
}

func (r *CustomFieldRepo) getByID(ctx context.Context, id uint64) (CustomField, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id,project_id,field_name,field_value,added_by,created_at FROM project_custom_fields WHERE id=? LIMIT 1", id)
	return scanCustomField(row)
}

func scanCustomField(row interface{ Scan(...any) error }) (CustomField, error) {
	var f CustomField
	var value sql.NullString
	err := row.Scan(&f.ID, &f.ProjectID, &f.FieldName, &value, &f.AddedBy, &f.CreatedAt)
	f.FieldValue = value.String
	return f, err
}
