package shipments

import "context"

// NotificationRepo remembers which tracking numbers were already emailed so a
// redelivered webhook does not notify the patient twice.
type NotificationRepo interface {
	AlreadySent(ctx context.Context, trackingNumber string) (bool, error)
	Record(ctx context.Context, n Notification) error
}
