package repository

import (
	"context"
	"database/sql"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// RoleRepo manages the flat {role_id, rolename} lookup table referenced by
// user metadata.
type RoleRepo struct {
	db *sql.DB
}

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) List(ctx context.Context) ([]model.RoleRow, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT role_id, rolename FROM roles ORDER BY role_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RoleRow{}
	for rows.Next() {
		var rr model.RoleRow
		if err := rows.Scan(&rr.RoleID, &rr.RoleName); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *RoleRepo) Create(ctx context.Context, rolename string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO roles (rolename) VALUES ($1) RETURNING role_id", rolename).Scan(&id)
	return id, err
}

func (r *RoleRepo) Update(ctx context.Context, id int64, rolename string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE roles SET rolename=$2 WHERE role_id=$1", id, rolename)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM roles WHERE role_id=$1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
