package submissions

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/artifacts"
	"intake-backend/internal/fulfillment"
	"intake-backend/internal/intake"
	"intake-backend/internal/mailer"
	"intake-backend/internal/notify"
	"intake-backend/internal/shared/storage/object/local"
	"intake-backend/internal/summary"
)

type stubCreator struct {
	err error
}

func (s stubCreator) CreateOrder(ctx context.Context, order fulfillment.Order) (fulfillment.CreatedOrder, error) {
	return fulfillment.CreatedOrder{OrderNumber: order.OrderNumber}, s.err
}

type failingRenderer struct{}

func (failingRenderer) Render(intake.PatientRecord) ([]byte, error) {
	return nil, errors.New("font missing")
}

type fixture struct {
	svc         *Service
	sender      *mailer.LogSender
	repo        *MemoryRepo
	artifactDir string
	archiveDir  string
}

func newFixture(t *testing.T, creator fulfillment.OrderCreator) fixture {
	t.Helper()
	sender := mailer.NewLogSender()
	repo := NewMemoryRepo()
	artifactDir := t.TempDir()
	archiveDir := t.TempDir()
	svc := &Service{
		Renderer:  summary.NewRenderer("City Life Pharmacy"),
		Artifacts: artifacts.New(local.New(artifactDir)),
		Notifier:  notify.NewDispatcher(sender, nil, "info@citylifepharmacy.com", "staff@citylifepharmacy.com"),
		Forwarder: fulfillment.NewForwarder(creator, fulfillment.Defaults{StoreID: "1", UnitPrice: 150, DefaultCountry: "CA"}),
		Repo:      repo,
		Archive:   NewArchive(local.New(archiveDir)),
	}
	return fixture{svc: svc, sender: sender, repo: repo, artifactDir: artifactDir, archiveDir: archiveDir}
}

func janeRecord(t *testing.T) intake.PatientRecord {
	t.Helper()
	fields, err := intake.Decode([]byte(`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","preferredMedication":"drops","height":"65","weight":"180"}`))
	require.NoError(t, err)
	return intake.Normalize(fields, nil)
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestProcessHappyPath(t *testing.T) {
	f := newFixture(t, stubCreator{})

	sub, err := f.svc.Process(context.Background(), "req-1", janeRecord(t))

	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "req-1", sub.RequestID)
	assert.Equal(t, "drops", sub.Medication)
	assert.Equal(t, notify.OutcomeSent, sub.PatientEmail)
	assert.Equal(t, notify.OutcomeSent, sub.StaffEmail)
	assert.Equal(t, fulfillment.StatusForwarded, sub.Fulfillment)
	assert.Equal(t, fulfillment.OrderNumber(janeRecord(t)), sub.OrderNumber)

	msgs := f.sender.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"jane@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"staff@citylifepharmacy.com"}, msgs[1].To)
	require.Len(t, msgs[1].Attachments, 1)
	assert.Equal(t, "consultation_Jane_Doe.pdf", msgs[1].Attachments[0].Name)
	assert.Contains(t, string(msgs[1].Attachments[0].Data[:8]), "%PDF")

	assert.Len(t, f.repo.All(), 1)
	assert.Zero(t, countFiles(t, f.artifactDir), "summary pdf must be removed")

	archived, err := os.ReadFile(filepath.Join(f.archiveDir, LastSubmissionKey))
	require.NoError(t, err)
	assert.Contains(t, string(archived), `"firstName": "Jane"`)
}

func TestProcessFulfillmentFailureIsSoft(t *testing.T) {
	f := newFixture(t, stubCreator{err: &fulfillment.APIError{Status: 500, Body: "down"}})

	sub, err := f.svc.Process(context.Background(), "req-2", janeRecord(t))

	require.NoError(t, err)
	assert.Equal(t, fulfillment.StatusFailed, sub.Fulfillment)
	assert.Equal(t, 500, sub.FulfillmentHTTPStatus)
	assert.Len(t, f.sender.Messages(), 2)
}

func TestProcessEmailFailureIsSoft(t *testing.T) {
	f := newFixture(t, stubCreator{})
	f.sender.Err = errors.New("relay down")

	sub, err := f.svc.Process(context.Background(), "req-3", janeRecord(t))

	require.NoError(t, err)
	assert.Equal(t, notify.OutcomeFailed, sub.PatientEmail)
	assert.Equal(t, notify.OutcomeFailed, sub.StaffEmail)
	assert.Equal(t, fulfillment.StatusForwarded, sub.Fulfillment)
}

func TestProcessRenderFailureIsHard(t *testing.T) {
	f := newFixture(t, stubCreator{})
	f.svc.Renderer = failingRenderer{}

	_, err := f.svc.Process(context.Background(), "req-4", janeRecord(t))

	assert.ErrorIs(t, err, ErrRender)
	assert.Empty(t, f.sender.Messages())
	assert.Empty(t, f.repo.All())
}

func TestProcessWithoutArchive(t *testing.T) {
	f := newFixture(t, stubCreator{})
	f.svc.Archive = nil

	_, err := f.svc.Process(context.Background(), "req-5", janeRecord(t))

	require.NoError(t, err)
	assert.Zero(t, countFiles(t, f.archiveDir))
}

func TestEncodeFieldsKeepsOrder(t *testing.T) {
	data, err := encodeFields([]intake.Field{
		{Key: "zeta", Value: "last"},
		{Key: "alpha", Value: true},
		{Key: "list", Value: []any{"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"zeta\": \"last\",\n  \"alpha\": true,\n  \"list\": [\"a\",\"b\"]\n}\n", string(data))
}
