package intake

import "strings"

// Medication is the canonical treatment chosen on the form.
type Medication string

const (
	MedicationQuickStrips Medication = "quickstrips" // compounded semaglutide oral film
	MedicationDrops       Medication = "drops"       // sublingual semaglutide drops
	MedicationTirzepatide Medication = "tirzepatide"
	MedicationOzempic     Medication = "ozempic"
	MedicationUnspecified Medication = "unspecified"
)

// ParseMedication maps free-form form values onto a Medication, case-insensitively.
// Brand and formulation synonyms are folded in; anything else is unspecified.
func ParseMedication(raw string) Medication {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	if key == "" {
		return MedicationUnspecified
	}
	switch key {
	case "quickstrips", "quick strips", "semaglutide", "semaglutide film", "strips", "film":
		return MedicationQuickStrips
	case "drops", "sublingual drops", "semaglutide drops":
		return MedicationDrops
	case "tirzepatide", "mounjaro":
		return MedicationTirzepatide
	case "ozempic":
		return MedicationOzempic
	}
	switch {
	case strings.Contains(key, "ozempic"):
		return MedicationOzempic
	case strings.Contains(key, "mounjaro"), strings.Contains(key, "tirzepatide"):
		return MedicationTirzepatide
	case strings.Contains(key, "drop"):
		return MedicationDrops
	case strings.Contains(key, "strip"), strings.Contains(key, "film"):
		return MedicationQuickStrips
	}
	return MedicationUnspecified
}

// Injectable reports whether the medication ships as a pen and needs injection instructions.
func (m Medication) Injectable() bool {
	return m == MedicationOzempic || m == MedicationTirzepatide
}

func (m Medication) String() string {
	return string(m)
}
