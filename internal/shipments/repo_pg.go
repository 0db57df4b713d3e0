package shipments

import (
	"context"
	"database/sql"
)

// PGRepo implements NotificationRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) AlreadySent(ctx context.Context, trackingNumber string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM shipment_notifications
    WHERE tracking_number = $1 AND email_status = 'sent'
)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, trackingNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Record inserts a notification. A second 'sent' row for the same tracking
// number is dropped by the partial unique index.
func (r *PGRepo) Record(ctx context.Context, n Notification) error {
	const query = `
INSERT INTO shipment_notifications (id, tracking_number, carrier_code, email_status, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query, n.ID, n.TrackingNumber, n.CarrierCode, n.EmailStatus, n.CreatedAt)
	return err
}
