package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// NotificationRepo writes and reads fan-out notification rows. Creation is
// always best-effort from the caller's point of view: call sites log a
// failed Create and carry on with the primary operation.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts a notification row.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	var recipientID any
	if n.RecipientID != nil {
		recipientID = *n.RecipientID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient_role, recipient_id, message, icon, priority, link, read)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,false)`,
		uuid.New(), n.RecipientRole.String(), recipientID, n.Message, n.Icon, n.Priority, n.Link)
	return err
}

// ListForRecipient returns unread-first notifications addressed to the
// user's id or to their role.
func (r *NotificationRepo) ListForRecipient(ctx context.Context, role model.Role, userID uuid.UUID) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recipient_role, recipient_id, message, icon, priority, link, read, created_at
		 FROM notifications
		 WHERE recipient_id = $2 OR (recipient_id IS NULL AND recipient_role = $1)
		 ORDER BY read ASC, created_at DESC`,
		role.String(), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var (
			n    model.Notification
			role sql.NullString
			rid  sql.NullString
		)
		if err := rows.Scan(&n.ID, &role, &rid, &n.Message, &n.Icon, &n.Priority, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if role.Valid {
			n.RecipientRole = model.ParseRole(role.String)
		}
		n.RecipientID = parseNullUUID(rid)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read=true WHERE id=$1", id)
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

// Delete removes a notification.
func (r *NotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notifications WHERE id=$1", id)
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
