package notify

import (
	"context"
	"strings"

	"intake-backend/internal/assets"
	"intake-backend/internal/intake"
	"intake-backend/internal/letters"
	"intake-backend/internal/mailer"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/telemetry"
)

// Outcome records what happened to one outbound email.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// InstructionSource supplies injection guides for injectable medications.
type InstructionSource interface {
	Lookup(med intake.Medication) (assets.Attachment, error)
}

// Dispatcher composes and sends the patient and staff emails for a submission.
// Delivery problems are logged and reported as an Outcome, never returned.
type Dispatcher struct {
	Sender        mailer.Sender
	Assets        InstructionSource
	From          string
	PharmacyEmail string
}

func NewDispatcher(sender mailer.Sender, src InstructionSource, from, pharmacyEmail string) *Dispatcher {
	return &Dispatcher{Sender: sender, Assets: src, From: from, PharmacyEmail: pharmacyEmail}
}

// SendPatient mails the treatment letter when the record has an email address.
// Injectable letters carry the instruction PDF when it can be read.
func (d *Dispatcher) SendPatient(ctx context.Context, rec intake.PatientRecord, letter letters.Letter) Outcome {
	if strings.TrimSpace(rec.Email) == "" {
		metrics.PatientEmailSkipped.Inc()
		telemetry.Info("notify.patient.skipped", map[string]any{"reason": "no_email"})
		return OutcomeSkipped
	}

	msg := mailer.Message{
		From:    d.From,
		To:      []string{rec.Email},
		Subject: letter.Subject,
		Text:    letter.Text,
		HTML:    letter.HTML,
	}
	if letter.Injectable && d.Assets != nil {
		att, err := d.Assets.Lookup(letter.Medication)
		if err != nil {
			metrics.InstructionsMissing.Inc()
			telemetry.Warn("notify.instructions.missing", map[string]any{
				"medication": letter.Medication.String(),
				"error":      err.Error(),
			})
		} else {
			msg.Attachments = append(msg.Attachments, mailer.Attachment{
				Name:        att.Name,
				ContentType: att.ContentType,
				Data:        att.Data,
			})
		}
	}

	if err := d.Sender.Send(ctx, msg); err != nil {
		metrics.PatientEmailFailed.Inc()
		telemetry.Error("notify.patient.failed", map[string]any{
			"medication": letter.Medication.String(),
			"error":      err.Error(),
		})
		return OutcomeFailed
	}
	metrics.PatientEmailSent.Inc()
	telemetry.Info("notify.patient.sent", map[string]any{
		"medication":  letter.Medication.String(),
		"attachments": len(msg.Attachments),
	})
	return OutcomeSent
}

// SendStaff mails the consultation summary and any uploaded ID to the pharmacy.
func (d *Dispatcher) SendStaff(ctx context.Context, rec intake.PatientRecord, summaryPDF []byte) Outcome {
	html, text, err := renderStaff(rec)
	if err != nil {
		metrics.StaffEmailFailed.Inc()
		telemetry.Error("notify.staff.template_failed", map[string]any{"error": err.Error()})
		return OutcomeFailed
	}

	token := nameToken(rec)
	msg := mailer.Message{
		From:    d.From,
		To:      []string{d.PharmacyEmail},
		Subject: "New Weight Loss Consultation - " + displayName(rec),
		Text:    text,
		HTML:    html,
		Attachments: []mailer.Attachment{{
			Name:        "consultation_" + token + ".pdf",
			ContentType: "application/pdf",
			Data:        summaryPDF,
		}},
	}
	if id := rec.IDDocument; id != nil && len(id.Data) > 0 {
		ext := id.Extension
		if ext == "" {
			ext = "bin"
		}
		ct := id.ContentType
		if ct == "" {
			ct = intake.ContentTypeForExtension(ext)
		}
		msg.Attachments = append(msg.Attachments, mailer.Attachment{
			Name:        "patient_id_" + token + "." + ext,
			ContentType: ct,
			Data:        id.Data,
		})
	}

	if err := d.Sender.Send(ctx, msg); err != nil {
		metrics.StaffEmailFailed.Inc()
		telemetry.Error("notify.staff.failed", map[string]any{"error": err.Error()})
		return OutcomeFailed
	}
	metrics.StaffEmailSent.Inc()
	telemetry.Info("notify.staff.sent", map[string]any{"attachments": len(msg.Attachments)})
	return OutcomeSent
}

func displayName(rec intake.PatientRecord) string {
	if name := rec.FullName(); name != "" {
		return name
	}
	return "Unknown Patient"
}

// nameToken is the full name with whitespace runs replaced by underscores.
func nameToken(rec intake.PatientRecord) string {
	return strings.Join(strings.Fields(displayName(rec)), "_")
}
