package main

// Render a sample submission locally:
//   go run ./cmd/renderdemo -out ./out
//   go run ./cmd/renderdemo -in submission.json -out ./out

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"intake-backend/internal/intake"
	"intake-backend/internal/letters"
	"intake-backend/internal/summary"
)

const sampleSubmission = `{
  "firstName": "Jane",
  "lastName": "Doe",
  "email": "jane@example.com",
  "phone": "416-555-0100",
  "dateOfBirth": "1985-04-12",
  "address": "1 King St W",
  "city": "Toronto",
  "province": "ON",
  "postalCode": "M5H 1A1",
  "height": "65",
  "weight": "180",
  "idealWeight": "150",
  "preferredMedication": "Ozempic",
  "weightLossAttempts": ["Diet", "Exercise"],
  "diabetes": false,
  "deliveryMethod": "Shipping",
  "howDidYouHear": "Friend"
}`

func main() {
	inPath := flag.String("in", "", "submission JSON (defaults to a built-in sample)")
	outDir := flag.String("out", "./out", "output directory")
	flag.Parse()

	raw := []byte(sampleSubmission)
	if *inPath != "" {
		data, err := os.ReadFile(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input: %v\n", err)
			os.Exit(1)
		}
		raw = data
	}

	fields, err := intake.Decode(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode submission: %v\n", err)
		os.Exit(1)
	}
	rec := intake.Normalize(fields, nil)

	pdfBytes, err := summary.NewRenderer("City Life Pharmacy").Render(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	pages, err := countPages(pdfBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	letter := letters.ForMedication(rec.Medication, rec.FirstName)
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}
	pdfPath := filepath.Join(*outDir, summary.FileName(rec))
	letterPath := filepath.Join(*outDir, "letter_"+rec.MedicationKey()+".html")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write pdf: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(letterPath, []byte(letter.HTML), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write letter: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%d page(s)) and %s\n", pdfPath, pages, letterPath)
}

func countPages(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	if r.NumPage() == 0 {
		return 0, fmt.Errorf("no pages")
	}
	return r.NumPage(), nil
}
