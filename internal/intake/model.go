package intake

import "strings"

// Field is one top-level answer from the questionnaire, in submission order.
// Value keeps its decoded JSON shape: string, json.Number, bool, []any, map[string]any or nil.
type Field struct {
	Key   string
	Value any
}

// IDDocument is the patient's uploaded identification.
type IDDocument struct {
	FileName    string
	Extension   string
	ContentType string
	Data        []byte
}

// PatientRecord is the canonical view of a submission. Built once per request
// and read-only afterwards. String attributes are "" when absent.
type PatientRecord struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	Gender      string

	Street     string
	City       string
	Province   string
	PostalCode string
	Country    string

	Height string
	Weight string
	BMI    float64
	HasBMI bool

	Medication     Medication
	MedicationRaw  string
	DeliveryMethod string

	Fields     []Field
	IDDocument *IDDocument

	claimed map[string]bool
}

// FullName joins first and last name with a single space.
func (p PatientRecord) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Claimed reports whether key was consumed while resolving a canonical attribute.
func (p PatientRecord) Claimed(key string) bool {
	return p.claimed[key]
}

// Lookup returns the first raw field named key.
func (p PatientRecord) Lookup(key string) (any, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// HasAddress reports whether any address attribute is present.
func (p PatientRecord) HasAddress() bool {
	return p.Street != "" || p.City != "" || p.Province != "" || p.PostalCode != ""
}

// MedicationKey is the identifier used for SKUs and line items: the canonical
// medication when recognized, otherwise a slug of what the patient chose.
func (p PatientRecord) MedicationKey() string {
	if p.Medication != MedicationUnspecified {
		return string(p.Medication)
	}
	if slug := slugify(p.MedicationRaw); slug != "" {
		return slug
	}
	return string(MedicationUnspecified)
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
