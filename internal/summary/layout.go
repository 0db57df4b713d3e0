package summary

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"intake-backend/internal/intake"
)

// Row is one label/value line in the summary.
type Row struct {
	Label string
	Value string
}

// Section is a titled group of rows. Sections without rows are never emitted.
type Section struct {
	Title string
	Rows  []Row
}

const (
	SectionPersonal   = "Personal Information"
	SectionAddress    = "Address Information"
	SectionPhysical   = "Physical Information"
	SectionMedical    = "Medical Information"
	SectionDelivery   = "Delivery Information"
	SectionAdditional = "Additional Information"
)

// medicalKeys are rendered in this order under Medical Information.
// preferredMedication stands in for the whole medication alias chain.
var medicalKeys = []string{
	"currentMedications",
	"medications",
	"otherMedications",
	"weightLossMedications",
	"allergies",
	"medicationAllergies",
	"specifyAllergies",
	"medicalConditions",
	"bloodPressure",
	"weightLossAttempts",
	"idealWeight",
	"dietaryRestrictions",
	"exerciseRoutine",
	"smokingStatus",
	"alcoholConsumption",
	"sleepPatterns",
	"stressLevels",
	"menstrualCycle",
	"preferredMedication",
	"treatmentGoals",
}

var medicalSet = func() map[string]bool {
	m := make(map[string]bool, len(medicalKeys))
	for _, k := range medicalKeys {
		m[k] = true
	}
	return m
}()

// Layout arranges a record into the summary's sections.
func Layout(rec intake.PatientRecord) []Section {
	sections := []Section{
		{Title: SectionPersonal, Rows: nonEmpty(
			Row{Label("firstName"), rec.FirstName},
			Row{Label("lastName"), rec.LastName},
			Row{Label("email"), rec.Email},
			Row{Label("phone"), rec.Phone},
			Row{Label("dateOfBirth"), rec.DateOfBirth},
			Row{Label("gender"), rec.Gender},
		)},
		{Title: SectionAddress, Rows: nonEmpty(
			Row{Label("address"), rec.Street},
			Row{Label("city"), rec.City},
			Row{Label("province"), rec.Province},
			Row{Label("postalCode"), rec.PostalCode},
			Row{Label("country"), rec.Country},
		)},
		{Title: SectionPhysical, Rows: nonEmpty(
			Row{Label("height"), withUnit(rec.Height, "inches")},
			Row{Label("weight"), withUnit(rec.Weight, "lbs")},
			Row{Label("bmi"), formatBMI(rec)},
		)},
		{Title: SectionMedical, Rows: medicalRows(rec)},
		{Title: SectionDelivery, Rows: nonEmpty(
			Row{Label("deliveryMethod"), titleCase(rec.DeliveryMethod)},
		)},
		{Title: SectionAdditional, Rows: additionalRows(rec)},
	}

	out := sections[:0]
	for _, s := range sections {
		if len(s.Rows) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func medicalRows(rec intake.PatientRecord) []Row {
	var rows []Row
	for _, key := range medicalKeys {
		if key == "preferredMedication" {
			if rec.MedicationRaw != "" {
				rows = append(rows, Row{Label(key), rec.MedicationRaw})
			}
			continue
		}
		if v, ok := rec.Lookup(key); ok {
			if text := intake.Text(v); text != "" {
				rows = append(rows, Row{Label(key), text})
			}
		}
	}
	return rows
}

func additionalRows(rec intake.PatientRecord) []Row {
	seen := map[string]bool{}
	var rows []Row
	for _, f := range rec.Fields {
		if seen[f.Key] || rec.Claimed(f.Key) || medicalSet[f.Key] {
			continue
		}
		seen[f.Key] = true
		if text := intake.Text(f.Value); text != "" {
			rows = append(rows, Row{Label(f.Key), text})
		}
	}
	return rows
}

func nonEmpty(rows ...Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Value) != "" {
			out = append(out, r)
		}
	}
	return out
}

// withUnit appends unit only to bare numbers so answers like 5'6" stay untouched.
func withUnit(value, unit string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, r := range value {
		if (r < '0' || r > '9') && r != '.' {
			return value
		}
	}
	return value + " " + unit
}

func formatBMI(rec intake.PatientRecord) string {
	if !rec.HasBMI {
		return ""
	}
	return fmt.Sprintf("%.1f", rec.BMI)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}
