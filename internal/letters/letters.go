package letters

import (
	"html"
	"strings"

	"intake-backend/internal/intake"
)

// Subject is used for every treatment letter.
const Subject = "Your Treatment Plan - City Life Pharmacy"

const fallbackName = "there"

// Letter is the patient-facing treatment plan for one medication.
type Letter struct {
	Medication intake.Medication
	Subject    string
	Text       string
	HTML       string
	// Injectable letters reference an attached instruction PDF.
	Injectable bool
}

// Select picks the letter for a medication key (case-insensitive, synonyms allowed)
// and greets the patient by first name. Unknown keys get the generic acknowledgment.
func Select(medication, firstName string) Letter {
	return ForMedication(intake.ParseMedication(medication), firstName)
}

// ForMedication builds the letter for an already parsed medication.
func ForMedication(med intake.Medication, firstName string) Letter {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = fallbackName
	}
	body, ok := bodies[med]
	if !ok {
		body = genericBody
	}
	greeting := "Hi " + name + ",\n\n"
	htmlGreeting := "Hi " + html.EscapeString(name) + ",\n\n"
	return Letter{
		Medication: med,
		Subject:    Subject,
		Text:       greeting + stripMarkup(body),
		HTML:       toHTML(htmlGreeting + body),
		Injectable: ok && med.Injectable(),
	}
}

var markup = strings.NewReplacer("<strong>", "", "</strong>", "")

func stripMarkup(s string) string {
	return markup.Replace(s)
}

// toHTML keeps the letters' <strong> emphasis and turns line breaks into <br>.
func toHTML(s string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; font-size: 14px; line-height: 1.5;">`)
	b.WriteString(strings.ReplaceAll(s, "\n", "<br>\n"))
	b.WriteString(`</div>`)
	return b.String()
}
