package fulfillment

import (
	"context"
	"errors"
	"time"

	"intake-backend/internal/intake"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/telemetry"
)

// Status is the outcome of forwarding one order.
type Status string

const (
	StatusForwarded Status = "forwarded"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result describes a forwarding attempt. HTTPStatus is set for API rejections.
type Result struct {
	Status      Status
	OrderNumber string
	HTTPStatus  int
}

// OrderCreator is the part of Client the forwarder needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order Order) (CreatedOrder, error)
}

// Forwarder sends each submission to ShipStation exactly once. A nil Client
// means credentials are missing and every order is skipped.
type Forwarder struct {
	Client   OrderCreator
	Defaults Defaults
	Now      func() time.Time
}

func NewForwarder(client OrderCreator, defaults Defaults) *Forwarder {
	return &Forwarder{Client: client, Defaults: defaults, Now: time.Now}
}

// Forward never returns an error; failures are logged and reflected in Result.
func (f *Forwarder) Forward(ctx context.Context, rec intake.PatientRecord) Result {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	order := BuildOrder(rec, f.Defaults, now())
	res := Result{OrderNumber: order.OrderNumber}

	if f.Client == nil {
		metrics.OrdersSkipped.Inc()
		telemetry.Warn("fulfillment.skipped", map[string]any{
			"order_number": order.OrderNumber,
			"reason":       "credentials_missing",
		})
		res.Status = StatusSkipped
		return res
	}

	created, err := f.Client.CreateOrder(ctx, order)
	if err != nil {
		var apiErr *APIError
		fields := map[string]any{"order_number": order.OrderNumber, "error": err.Error()}
		if errors.As(err, &apiErr) {
			res.HTTPStatus = apiErr.Status
			fields["status"] = apiErr.Status
		}
		metrics.OrdersFailed.Inc()
		telemetry.Error("fulfillment.failed", fields)
		res.Status = StatusFailed
		return res
	}

	metrics.OrdersForwarded.Inc()
	telemetry.Info("fulfillment.forwarded", map[string]any{
		"order_number": order.OrderNumber,
		"order_id":     created.OrderID,
	})
	res.Status = StatusForwarded
	res.HTTPStatus = 200
	return res
}
