package submissions

import (
	"time"

	"intake-backend/internal/fulfillment"
	"intake-backend/internal/notify"
)

// Submission is the audit row for one processed intake form. It records
// outcomes only; questionnaire answers are not persisted.
type Submission struct {
	ID                    string
	RequestID             string
	Medication            string
	OrderNumber           string
	HasIDDocument         bool
	PatientEmail          notify.Outcome
	StaffEmail            notify.Outcome
	Fulfillment           fulfillment.Status
	FulfillmentHTTPStatus int
	CreatedAt             time.Time
	CompletedAt           time.Time
}
