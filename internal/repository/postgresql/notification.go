package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `id, employee_id, type, title, message, related_id, is_read, read_at, email_sent, created_at`

func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	n.ID = uuid.New().String()
	query := `
		INSERT INTO notifications (id, employee_id, type, title, message, related_id, is_read, email_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, NOW())
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query, n.ID, n.EmployeeID, n.Type, n.Title, n.Message, n.RelatedID).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter notification.ListFilter) ([]notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"employee_id = $1"}
	args := []interface{}{employeeID}
	argPos := 2

	if filter.UnreadOnly {
		conditions = append(conditions, "is_read = FALSE")
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE ` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepositoryImpl) UnreadCount(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE employee_id = $1 AND is_read = FALSE`
	if err := q.QueryRow(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Already-read rows are left alone; the operation is idempotent.
	query := `UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE id = $1 AND is_read = FALSE`
	_, err := q.Exec(ctx, query, id)
	return err
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE employee_id = $1 AND is_read = FALSE`
	commandTag, err := q.Exec(ctx, query, employeeID)
	if err != nil {
		return 0, err
	}
	return int(commandTag.RowsAffected()), nil
}

func (r *notificationRepositoryImpl) MarkEmailSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE notifications SET email_sent = TRUE WHERE id = $1`, id)
	return err
}

func (r *notificationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM notifications WHERE employee_id = $1`, employeeID)
	return err
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(
		&n.ID,
		&n.EmployeeID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.RelatedID,
		&n.Read,
		&n.ReadAt,
		&n.EmailSent,
		&n.CreatedAt,
	)
	return n, err
}
