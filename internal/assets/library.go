package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"intake-backend/internal/intake"
	"intake-backend/internal/shared/telemetry"
)

// ErrNoInstructions is returned for medications that ship without an instruction sheet.
var ErrNoInstructions = errors.New("no instructions for medication")

// Instruction names a file under the library directory and the name shown to the patient.
type Instruction struct {
	File        string
	DisplayName string
}

// Attachment is an instruction sheet loaded into memory.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Instructions maps injectable medications to their injection guides.
var Instructions = map[intake.Medication]Instruction{
	intake.MedicationOzempic: {
		File:        "Ozempic Injection Instructions (1).pdf",
		DisplayName: "Ozempic_Injection_Instructions.pdf",
	},
	intake.MedicationTirzepatide: {
		File:        "Mounjaro Penfill Instructions.pdf",
		DisplayName: "Mounjaro_Injection_Instructions.pdf",
	},
}

// Library reads instruction PDFs from a directory.
type Library struct {
	Dir string
}

func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// Lookup loads the instruction sheet for med. Files are read on every call so
// replacing a PDF on disk takes effect without a restart.
func (l *Library) Lookup(med intake.Medication) (Attachment, error) {
	inst, ok := Instructions[med]
	if !ok {
		return Attachment{}, ErrNoInstructions
	}
	data, err := os.ReadFile(filepath.Join(l.Dir, inst.File))
	if err != nil {
		return Attachment{}, fmt.Errorf("read instructions %q: %w", inst.File, err)
	}
	return Attachment{Name: inst.DisplayName, ContentType: "application/pdf", Data: data}, nil
}

// Verify opens every instruction sheet and logs its page count, or the problem.
// It returns the first error found but checks all files.
func (l *Library) Verify(ctx context.Context) error {
	var first error
	for med, inst := range Instructions {
		if err := ctx.Err(); err != nil {
			return err
		}
		pages, err := l.pageCount(med)
		if err != nil {
			telemetry.Warn("assets.instructions.invalid", map[string]any{
				"medication": med.String(),
				"file":       inst.File,
				"error":      err.Error(),
			})
			if first == nil {
				first = err
			}
			continue
		}
		telemetry.Info("assets.instructions.ok", map[string]any{
			"medication": med.String(),
			"file":       inst.File,
			"pages":      pages,
		})
	}
	return first
}

func (l *Library) pageCount(med intake.Medication) (int, error) {
	att, err := l.Lookup(med)
	if err != nil {
		return 0, err
	}
	r, err := pdf.NewReader(bytes.NewReader(att.Data), int64(len(att.Data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", att.Name, err)
	}
	n := r.NumPage()
	if n == 0 {
		return 0, fmt.Errorf("parse %s: no pages", att.Name)
	}
	return n, nil
}
