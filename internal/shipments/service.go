package shipments

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"intake-backend/internal/fulfillment"
	"intake-backend/internal/mailer"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/telemetry"
)

// ShipmentSource resolves a webhook resource_url into shipments.
type ShipmentSource interface {
	GetShipments(ctx context.Context, resourceURL string) ([]fulfillment.Shipment, error)
}

// Service turns SHIP_NOTIFY webhooks into tracking emails. A nil Source means
// ShipStation is not configured and events are only logged.
type Service struct {
	Source ShipmentSource
	Sender mailer.Sender
	From   string
	Repo   NotificationRepo
	Now    func() time.Time
}

// Handle processes one event and returns how many tracking emails were sent.
// Failures are logged, never returned.
func (s *Service) Handle(ctx context.Context, ev Event) int {
	kind := ev.Type()
	if kind != EventShipNotify || strings.TrimSpace(ev.ResourceURL) == "" {
		telemetry.Info("webhook.ignored", map[string]any{"event": kind})
		return 0
	}
	if s.Source == nil {
		telemetry.Warn("webhook.skipped", map[string]any{"event": kind, "reason": "credentials_missing"})
		return 0
	}

	list, err := s.Source.GetShipments(ctx, ev.ResourceURL)
	if err != nil {
		telemetry.Error("webhook.fetch_failed", map[string]any{"event": kind, "error": err.Error()})
		return 0
	}

	sent := 0
	for _, sh := range list {
		if s.notify(ctx, sh) {
			sent++
		}
	}
	telemetry.Info("webhook.processed", map[string]any{"event": kind, "shipments": len(list), "emails_sent": sent})
	return sent
}

func (s *Service) notify(ctx context.Context, sh fulfillment.Shipment) bool {
	email := strings.TrimSpace(sh.CustomerEmail)
	if email == "" || strings.TrimSpace(sh.TrackingNumber) == "" {
		telemetry.Warn("webhook.shipment_incomplete", map[string]any{
			"shipment_id":  sh.ShipmentID,
			"has_email":    email != "",
			"has_tracking": sh.TrackingNumber != "",
		})
		return false
	}
	if s.Repo != nil {
		done, err := s.Repo.AlreadySent(ctx, sh.TrackingNumber)
		if err != nil {
			telemetry.Warn("webhook.dedupe_lookup_failed", map[string]any{"error": err.Error()})
		} else if done {
			telemetry.Info("webhook.duplicate", map[string]any{"tracking_number": sh.TrackingNumber})
			return false
		}
	}

	status := EmailSent
	html, text, err := renderTracking(sh)
	if err == nil {
		err = s.Sender.Send(ctx, mailer.Message{
			From:    s.From,
			To:      []string{email},
			Subject: TrackingSubject,
			Text:    text,
			HTML:    html,
		})
	}
	if err != nil {
		status = EmailFailed
		metrics.TrackingEmailFailed.Inc()
		telemetry.Error("webhook.tracking_email_failed", map[string]any{
			"tracking_number": sh.TrackingNumber,
			"error":           err.Error(),
		})
	} else {
		metrics.TrackingEmailSent.Inc()
		telemetry.Info("webhook.tracking_email_sent", map[string]any{
			"tracking_number": sh.TrackingNumber,
			"carrier":         sh.CarrierCode,
		})
	}

	if s.Repo != nil {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		if err := s.Repo.Record(ctx, Notification{
			ID:             uuid.NewString(),
			TrackingNumber: sh.TrackingNumber,
			CarrierCode:    sh.CarrierCode,
			EmailStatus:    status,
			CreatedAt:      now().UTC(),
		}); err != nil {
			telemetry.Warn("webhook.record_failed", map[string]any{"error": err.Error()})
		}
	}
	return status == EmailSent
}
