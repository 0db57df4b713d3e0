package submissions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"intake-backend/internal/intake"
	"intake-backend/internal/shared/storage/object"
)

// LastSubmissionKey is where the most recent raw submission is kept for debugging.
const LastSubmissionKey = "submissions/last_submission.json"

// Archive overwrites a single object with the latest raw form answers.
type Archive struct {
	Store object.ObjectStore
}

func NewArchive(store object.ObjectStore) *Archive {
	return &Archive{Store: store}
}

// SaveLast writes fields as a JSON object in submission order.
func (a *Archive) SaveLast(ctx context.Context, fields []intake.Field) error {
	data, err := encodeFields(fields)
	if err != nil {
		return err
	}
	if err := a.Store.Put(ctx, LastSubmissionKey, "application/json", data); err != nil {
		return fmt.Errorf("archive last submission: %w", err)
	}
	return nil
}

func encodeFields(fields []intake.Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, f := range fields {
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", f.Key, err)
		}
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
