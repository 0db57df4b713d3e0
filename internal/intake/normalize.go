package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Decode parses a JSON object keeping top-level keys in submission order.
// Numbers decode as json.Number.
func Decode(data []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode form data: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	var out []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode form data: %w", err)
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode form data %q: %w", key, err)
		}
		out = append(out, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode form data: %w", err)
	}
	return out, nil
}

// Normalize resolves raw questionnaire fields into a PatientRecord.
// It never fails: missing or malformed answers become empty attributes.
func Normalize(fields []Field, id *IDDocument) PatientRecord {
	rec := PatientRecord{
		Fields:     fields,
		IDDocument: id,
		claimed:    map[string]bool{},
	}

	rec.FirstName, _ = rec.resolve(firstNameKeys)
	rec.LastName, _ = rec.resolve(lastNameKeys)
	full, _ := rec.resolve(fullNameKeys)
	if rec.FirstName == "" && rec.LastName == "" && full != "" {
		rec.FirstName, rec.LastName = splitFullName(full)
	}

	for _, a := range aliasTable {
		if v, ok := rec.resolve(a.keys); ok {
			a.set(&rec, v)
		}
	}

	if rec.Email == "" {
		rec.Email = scanForEmail(fields)
	}

	rec.Medication = ParseMedication(rec.MedicationRaw)

	if raw, ok := rec.resolve(bmiKeys); ok {
		if bmi, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && bmi > 0 {
			rec.BMI, rec.HasBMI = bmi, true
		}
	}
	if !rec.HasBMI {
		rec.BMI, rec.HasBMI = computeBMI(rec.Height, rec.Weight)
	}

	if rec.IDDocument == nil {
		if v, ok := rec.Lookup(idUploadKey); ok {
			if s, ok := v.(string); ok && s != "" {
				if doc, err := ParseDataURL(idUploadKey, s); err == nil {
					rec.IDDocument = doc
				}
			}
		}
	}
	rec.claimed[idUploadKey] = true

	return rec
}

// resolve returns the first non-empty value among keys and claims every key present.
func (p *PatientRecord) resolve(keys []string) (string, bool) {
	var (
		found string
		ok    bool
	)
	for _, key := range keys {
		v, present := p.Lookup(key)
		if !present {
			continue
		}
		p.claimed[key] = true
		if ok {
			continue
		}
		if s := Text(v); s != "" {
			found, ok = s, true
		}
	}
	return found, ok
}

func splitFullName(full string) (string, string) {
	full = strings.TrimSpace(full)
	first, last, _ := strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

func scanForEmail(fields []Field) string {
	for _, f := range fields {
		if s, ok := f.Value.(string); ok && strings.Contains(s, "@") {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Text renders a raw value as a single display string. Lists are comma-joined,
// objects become sorted "key: value" pairs, booleans become Yes/No.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := Text(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := Text(val[k]); s != "" {
				parts = append(parts, k+": "+s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

var (
	feetInchesRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*(?:'|ft|feet)\s*(\d+(?:\.\d+)?)?\s*(?:"|in|inches)?\s*$`)
	leadingNumRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
)

// HeightInches parses "66", "66 inches", 5'6" or "5 ft 6 in".
func HeightInches(raw string) (float64, bool) {
	if m := feetInchesRe.FindStringSubmatch(raw); m != nil {
		feet, _ := strconv.ParseFloat(m[1], 64)
		inches := 0.0
		if m[2] != "" {
			inches, _ = strconv.ParseFloat(m[2], 64)
		}
		return feet*12 + inches, true
	}
	return leadingNumber(raw)
}

// WeightPounds parses the leading number of a weight answer.
func WeightPounds(raw string) (float64, bool) {
	return leadingNumber(raw)
}

func leadingNumber(raw string) (float64, bool) {
	m := leadingNumRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// computeBMI uses the imperial formula: 703 * lbs / in².
func computeBMI(height, weight string) (float64, bool) {
	h, ok := HeightInches(height)
	if !ok || h <= 0 {
		return 0, false
	}
	w, ok := WeightPounds(weight)
	if !ok {
		return 0, false
	}
	bmi := 703 * w / (h * h)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return 0, false
	}
	return bmi, true
}
