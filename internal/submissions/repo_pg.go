package submissions

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new submission row.
func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	const query = `
INSERT INTO submissions (
    id,
    request_id,
    medication,
    order_number,
    has_id_document,
    patient_email_status,
    staff_email_status,
    fulfillment_status,
    fulfillment_http_status,
    created_at,
    completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var httpStatus sql.NullInt64
	if sub.FulfillmentHTTPStatus > 0 {
		httpStatus = sql.NullInt64{Int64: int64(sub.FulfillmentHTTPStatus), Valid: true}
	}
	var completedAt sql.NullTime
	if !sub.CompletedAt.IsZero() {
		completedAt = sql.NullTime{Time: sub.CompletedAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		sub.ID,
		sub.RequestID,
		sub.Medication,
		sub.OrderNumber,
		sub.HasIDDocument,
		string(sub.PatientEmail),
		string(sub.StaffEmail),
		string(sub.Fulfillment),
		httpStatus,
		sub.CreatedAt,
		completedAt,
	)
	return err
}
