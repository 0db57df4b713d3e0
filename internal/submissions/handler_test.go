package submissions_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/bootstrap"
	"intake-backend/internal/fulfillment"
	"intake-backend/internal/mailer"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/submissions"
)

type harness struct {
	app    *bootstrap.App
	sender *mailer.LogSender
	orders *atomic.Int32
	posted *orderLog
}

// orderLog keeps every order body the ShipStation stub received.
type orderLog struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (l *orderLog) add(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bodies = append(l.bodies, b)
}

func (l *orderLog) last(t *testing.T) map[string]any {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.bodies, "no order was posted")
	var order map[string]any
	require.NoError(t, json.Unmarshal(l.bodies[len(l.bodies)-1], &order))
	return order
}

func newHarness(t *testing.T, shipStatus int) harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := &atomic.Int32{}
	posted := &orderLog{}
	ship := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orders.Add(1)
		body, _ := io.ReadAll(r.Body)
		posted.add(body)
		w.WriteHeader(shipStatus)
		_, _ = w.Write([]byte(`{"orderId":1}`))
	}))
	t.Cleanup(ship.Close)

	instructions := t.TempDir()
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.AddPage()
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	require.NoError(t, os.WriteFile(filepath.Join(instructions, "Ozempic Injection Instructions (1).pdf"), buf.Bytes(), 0o600))

	cfg := config.Config{
		Env:                   "dev",
		CORSAllowOrigin:       []string{"http://localhost:5173"},
		ObjectStoreType:       "local",
		LocalStoreDir:         t.TempDir(),
		ArtifactDir:           t.TempDir(),
		InstructionsDir:       instructions,
		ArchiveLastSubmission: true,
		MaxSubmissionSize:     64 << 10,
		Mail: config.MailConfig{
			From:          "info@citylifepharmacy.com",
			PharmacyEmail: "staff@citylifepharmacy.com",
		},
		ShipStation: config.ShipStationConfig{
			APIKey:         "key",
			APISecret:      "secret",
			BaseURL:        ship.URL,
			StoreID:        "1",
			UnitPrice:      150,
			DefaultCountry: "CA",
			Timeout:        5 * time.Second,
		},
	}
	app, err := bootstrap.Build(cfg)
	require.NoError(t, err)
	sender, ok := app.Mailer.(*mailer.LogSender)
	require.True(t, ok, "mailer without credentials should log only")
	return harness{app: app, sender: sender, orders: orders, posted: posted}
}

func (h harness) post(t *testing.T, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submit-form", bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	h.app.Router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	return payload
}

const janeJSON = `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","phone":"416-555-0100","address":"1 King St W","city":"Toronto","province":"ON","postalCode":"M5H 1A1","preferredMedication":"Ozempic","height":"65","weight":"180","diabetes":false}`

func TestSubmitJSONFulfillmentFailureStillSucceeds(t *testing.T) {
	h := newHarness(t, http.StatusInternalServerError)

	resp := h.post(t, []byte(janeJSON), "application/json")

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	payload := decode(t, resp)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, submissions.SuccessMessage, payload["message"])
	assert.Equal(t, int32(1), h.orders.Load())

	order := h.posted.last(t)
	items, ok := order["items"].([]any)
	require.True(t, ok, "order items missing")
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "WL-OZEMPIC", item["sku"])
	assert.Equal(t, "WL-ozempic", item["lineItemKey"])
	assert.Equal(t, "jane@example.com", order["customerEmail"])

	msgs := h.sender.Messages()
	require.Len(t, msgs, 2)
	patient, staff := msgs[0], msgs[1]
	assert.Equal(t, []string{"jane@example.com"}, patient.To)
	assert.Contains(t, patient.Text, "Hi Jane,")
	assert.Contains(t, patient.Text, "Ozempic Dosing Schedule")
	require.Len(t, patient.Attachments, 1)
	assert.Equal(t, "Ozempic_Injection_Instructions.pdf", patient.Attachments[0].Name)

	assert.Equal(t, "New Weight Loss Consultation - Jane Doe", staff.Subject)
	require.Len(t, staff.Attachments, 1)
	assert.Equal(t, "consultation_Jane_Doe.pdf", staff.Attachments[0].Name)
	assert.Equal(t, "application/pdf", staff.Attachments[0].ContentType)

	rows := h.app.SubmissionsRepo.(*submissions.MemoryRepo).All()
	require.Len(t, rows, 1)
	assert.Equal(t, fulfillment.StatusFailed, rows[0].Fulfillment)
	assert.Equal(t, http.StatusInternalServerError, rows[0].FulfillmentHTTPStatus)
	assert.Equal(t, "ozempic", rows[0].Medication)
}

func TestSubmitMultipartWithIDFile(t *testing.T) {
	h := newHarness(t, http.StatusOK)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("formData", strings.Replace(janeJSON, "Ozempic", "drops", 1)))
	part, err := w.CreateFormFile("idFile", "Licence.JPG")
	require.NoError(t, err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp := h.post(t, body.Bytes(), w.FormDataContentType())

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	msgs := h.sender.Messages()
	require.Len(t, msgs, 2)
	assert.Empty(t, msgs[0].Attachments, "drops letter has no instructions")
	staff := msgs[1]
	require.Len(t, staff.Attachments, 2)
	assert.Equal(t, "patient_id_Jane_Doe.jpg", staff.Attachments[1].Name)
	assert.Equal(t, "image/jpeg", staff.Attachments[1].ContentType)

	rows := h.app.SubmissionsRepo.(*submissions.MemoryRepo).All()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].HasIDDocument)
	assert.Equal(t, fulfillment.StatusForwarded, rows[0].Fulfillment)
}

func TestSubmitMalformedJSONStillSucceeds(t *testing.T) {
	h := newHarness(t, http.StatusOK)

	resp := h.post(t, []byte(`{"firstName": "Jane",`), "application/json")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, decode(t, resp)["success"])
	msgs := h.sender.Messages()
	require.Len(t, msgs, 1, "no patient email without an address")
	assert.Equal(t, []string{"staff@citylifepharmacy.com"}, msgs[0].To)
	assert.Equal(t, "consultation_Unknown_Patient.pdf", msgs[0].Attachments[0].Name)
}

func TestSubmitTooLarge(t *testing.T) {
	h := newHarness(t, http.StatusOK)
	big := `{"notes":"` + strings.Repeat("x", 70<<10) + `"}`

	resp := h.post(t, []byte(big), "application/json")

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	assert.Equal(t, false, decode(t, resp)["success"])
	assert.Empty(t, h.sender.Messages())
}

func TestSubmitAliasRoute(t *testing.T) {
	h := newHarness(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/api/submit-form", strings.NewReader(janeJSON))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.app.Router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestSubmitSurnameWithTrailingPeriod(t *testing.T) {
	for _, last := range []string{"Smith Jr.", "Doe Jr..", "St. Pierre"} {
		t.Run(last, func(t *testing.T) {
			h := newHarness(t, http.StatusOK)
			body := `{"firstName":"Jane","lastName":"` + last + `","email":"jane@example.com","preferredMedication":"ozempic"}`

			resp := h.post(t, []byte(body), "application/json")

			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			assert.Equal(t, true, decode(t, resp)["success"])
			require.Len(t, h.sender.Messages(), 2, "patient and staff emails")
			assert.Equal(t, int32(1), h.orders.Load())
			assert.Equal(t, "New Weight Loss Consultation - Jane "+last, h.sender.Messages()[1].Subject)
		})
	}
}

func TestSubmitBrokenMultipartStillNotifiesStaff(t *testing.T) {
	var full bytes.Buffer
	w := multipart.NewWriter(&full)
	require.NoError(t, w.WriteField("formData", janeJSON))
	part, err := w.CreateFormFile("idFile", "licence.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, 512))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	tests := []struct {
		name        string
		body        []byte
		contentType string
	}{
		{name: "no boundary", body: full.Bytes(), contentType: "multipart/form-data"},
		{name: "truncated body", body: full.Bytes()[:full.Len()-200], contentType: w.FormDataContentType()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, http.StatusOK)

			resp := h.post(t, tt.body, tt.contentType)

			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			assert.Equal(t, true, decode(t, resp)["success"])
			msgs := h.sender.Messages()
			require.Len(t, msgs, 1, "no patient email without an address")
			assert.Equal(t, []string{"staff@citylifepharmacy.com"}, msgs[0].To)
			assert.Equal(t, "New Weight Loss Consultation - Unknown Patient", msgs[0].Subject)
		})
	}
}
