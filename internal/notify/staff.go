package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"intake-backend/internal/intake"
)

type staffRow struct {
	Label string
	Value string
}

var staffTemplate = template.Must(template.New("staff").Parse(`<div style="font-family: Arial, sans-serif; font-size: 14px;">
<h2>New Weight Loss Consultation</h2>
<table cellpadding="4" style="border-collapse: collapse;">
{{- range .}}
<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
<p>The full consultation form is attached as a PDF.</p>
</div>`))

func staffRows(rec intake.PatientRecord) []staffRow {
	bmi := ""
	if rec.HasBMI {
		bmi = fmt.Sprintf("%.1f", rec.BMI)
	}
	// Country alone is not enough to ship to; flag it for staff.
	address := "Not provided"
	if rec.HasAddress() {
		address = strings.Join(nonEmpty(rec.Street, rec.City, rec.Province, rec.PostalCode, rec.Country), ", ")
	}
	idDoc := "No"
	if rec.IDDocument != nil && len(rec.IDDocument.Data) > 0 {
		idDoc = "Yes"
	}
	rows := []staffRow{
		{"Name", displayName(rec)},
		{"Email", rec.Email},
		{"Phone", rec.Phone},
		{"Date of Birth", rec.DateOfBirth},
		{"Address", address},
		{"Preferred Medication", rec.MedicationRaw},
		{"Delivery Method", rec.DeliveryMethod},
		{"BMI", bmi},
		{"ID Document Attached", idDoc},
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Value != "" {
			out = append(out, r)
		}
	}
	return out
}

func renderStaff(rec intake.PatientRecord) (html, text string, err error) {
	rows := staffRows(rec)
	var buf bytes.Buffer
	if err := staffTemplate.Execute(&buf, rows); err != nil {
		return "", "", fmt.Errorf("render staff email: %w", err)
	}
	var tb strings.Builder
	tb.WriteString("New Weight Loss Consultation\n\n")
	for _, r := range rows {
		tb.WriteString(r.Label + ": " + r.Value + "\n")
	}
	tb.WriteString("\nThe full consultation form is attached as a PDF.\n")
	return buf.String(), tb.String(), nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
