package intake

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"intake-backend/internal/shared/telemetry"
)

const (
	formDataField = "formData"
	idFileField   = "idFile"
)

// FromRequest builds a PatientRecord from either a multipart submission
// (a formData JSON string plus an optional idFile part) or a raw JSON body.
// Malformed JSON or form data yields an empty record; only a body over the
// size limit or a failed read is returned.
func FromRequest(r *http.Request, maxMemory int64) (PatientRecord, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return fromMultipart(r, maxMemory)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return PatientRecord{}, fmt.Errorf("read body: %w", err)
	}
	return Normalize(decodeLenient(body), nil), nil
}

func fromMultipart(r *http.Request, maxMemory int64) (PatientRecord, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return PatientRecord{}, fmt.Errorf("parse multipart: %w", err)
		}
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
		telemetry.Warn("intake.form_data.invalid", map[string]any{"error": err.Error()})
		return Normalize(nil, nil), nil
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	fields := decodeLenient([]byte(r.FormValue(formDataField)))

	file, header, err := r.FormFile(idFileField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return Normalize(fields, nil), nil
	case err != nil:
		telemetry.Warn("intake.id_file.invalid", map[string]any{"error": err.Error()})
		return Normalize(fields, nil), nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return PatientRecord{}, fmt.Errorf("read %s: %w", idFileField, err)
	}
	name := filepath.Base(header.Filename)
	ext := ExtensionOf(name)
	return Normalize(fields, &IDDocument{
		FileName:    name,
		Extension:   ext,
		ContentType: ContentTypeForExtension(ext),
		Data:        data,
	}), nil
}

func decodeLenient(body []byte) []Field {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	fields, err := Decode(body)
	if err != nil {
		telemetry.Warn("intake.form_data.invalid", map[string]any{"error": err.Error(), "bytes": len(body)})
		return nil
	}
	return fields
}

// ParseDataURL decodes a base64 data URL such as data:image/png;base64,AAAA.
// The returned document is named after name with an extension matching its MIME type.
func ParseDataURL(name, raw string) (*IDDocument, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), "data:")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	ext := extensionForContentType(strings.TrimSuffix(meta, ";base64"))
	return &IDDocument{
		FileName:    name + "." + ext,
		Extension:   ext,
		ContentType: ContentTypeForExtension(ext),
		Data:        data,
	}, nil
}
