package submissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"intake-backend/internal/artifacts"
	"intake-backend/internal/fulfillment"
	"intake-backend/internal/intake"
	"intake-backend/internal/letters"
	"intake-backend/internal/notify"
	"intake-backend/internal/shared/telemetry"
	"intake-backend/internal/summary"
)

// Renderer produces the staff-facing summary PDF.
type Renderer interface {
	Render(rec intake.PatientRecord) ([]byte, error)
}

// Service runs one submission through render, notify and fulfillment.
type Service struct {
	Renderer  Renderer
	Artifacts *artifacts.Store
	Notifier  *notify.Dispatcher
	Forwarder *fulfillment.Forwarder
	Repo      Repo
	// Archive is optional; nil disables the last-submission copy.
	Archive *Archive
	Now     func() time.Time
}

// Process handles a normalized record. Only render and artifact failures are
// returned; email and fulfillment problems are recorded on the Submission.
func (s *Service) Process(ctx context.Context, requestID string, rec intake.PatientRecord) (Submission, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sub := Submission{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		Medication:    rec.MedicationKey(),
		HasIDDocument: rec.IDDocument != nil && len(rec.IDDocument.Data) > 0,
		CreatedAt:     now().UTC(),
	}

	if s.Archive != nil {
		if err := s.Archive.SaveLast(ctx, rec.Fields); err != nil {
			telemetry.Warn("submission.archive_failed", map[string]any{"submission_id": sub.ID, "error": err.Error()})
		}
	}

	pdf, err := s.Renderer.Render(rec)
	if err != nil {
		return sub, fmt.Errorf("%w: %v", ErrRender, err)
	}
	key, err := s.Artifacts.Put(ctx, sub.ID, summary.FileName(rec), pdf)
	if err != nil {
		return sub, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	defer func() {
		if err := s.Artifacts.Remove(context.WithoutCancel(ctx), key); err != nil {
			telemetry.Warn("submission.artifact_cleanup_failed", map[string]any{"submission_id": sub.ID, "error": err.Error()})
		}
	}()

	letter := letters.ForMedication(rec.Medication, rec.FirstName)
	sub.PatientEmail = s.Notifier.SendPatient(ctx, rec, letter)

	stored, err := s.Artifacts.Read(ctx, key)
	if err != nil {
		return sub, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	sub.StaffEmail = s.Notifier.SendStaff(ctx, rec, stored)

	res := s.Forwarder.Forward(ctx, rec)
	sub.OrderNumber = res.OrderNumber
	sub.Fulfillment = res.Status
	sub.FulfillmentHTTPStatus = res.HTTPStatus
	sub.CompletedAt = now().UTC()

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, sub); err != nil {
			telemetry.Warn("submission.audit_failed", map[string]any{"submission_id": sub.ID, "error": err.Error()})
		}
	}

	telemetry.Info("submission.processed", map[string]any{
		"submission_id": sub.ID,
		"medication":    sub.Medication,
		"patient_email": string(sub.PatientEmail),
		"staff_email":   string(sub.StaffEmail),
		"fulfillment":   string(sub.Fulfillment),
		"has_id":        sub.HasIDDocument,
		"order_number":  sub.OrderNumber,
		"duration_ms":   sub.CompletedAt.Sub(sub.CreatedAt).Milliseconds(),
	})
	return sub, nil
}
