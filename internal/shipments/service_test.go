package shipments

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/fulfillment"
	"intake-backend/internal/mailer"
)

type stubSource struct {
	shipments []fulfillment.Shipment
	err       error
	urls      []string
}

func (s *stubSource) GetShipments(ctx context.Context, resourceURL string) ([]fulfillment.Shipment, error) {
	s.urls = append(s.urls, resourceURL)
	return s.shipments, s.err
}

func shipped() fulfillment.Shipment {
	return fulfillment.Shipment{
		ShipmentID:     1,
		CustomerEmail:  "jane@example.com",
		TrackingNumber: "1Z999AA10123456784",
		CarrierCode:    "ups",
		ServiceCode:    "ups_ground",
	}
}

func newService(src ShipmentSource) (*Service, *mailer.LogSender, *MemoryRepo) {
	sender := mailer.NewLogSender()
	repo := NewMemoryRepo()
	return &Service{Source: src, Sender: sender, From: "info@citylifepharmacy.com", Repo: repo}, sender, repo
}

func TestHandleShipNotifySendsTrackingEmail(t *testing.T) {
	src := &stubSource{shipments: []fulfillment.Shipment{shipped()}}
	svc, sender, repo := newService(src)

	sent := svc.Handle(context.Background(), Event{ResourceType: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/shipments?batchId=1"})

	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"https://ssapi.shipstation.com/shipments?batchId=1"}, src.urls)
	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, TrackingSubject, msgs[0].Subject)
	assert.Equal(t, []string{"jane@example.com"}, msgs[0].To)
	assert.Contains(t, msgs[0].Text, "Your order has been shipped via UPS (ups_ground).")
	assert.Contains(t, msgs[0].Text, "Tracking Number: 1Z999AA10123456784")
	assert.Contains(t, msgs[0].Text, "https://www.google.com/search?q=ups+tracking+1Z999AA10123456784")
	assert.Contains(t, msgs[0].HTML, "1Z999AA10123456784")
	require.Len(t, repo.All(), 1)
	assert.Equal(t, EmailSent, repo.All()[0].EmailStatus)
}

func TestHandleLegacyEventKey(t *testing.T) {
	svc, sender, _ := newService(&stubSource{shipments: []fulfillment.Shipment{shipped()}})

	svc.Handle(context.Background(), Event{Event: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/shipments"})

	assert.Len(t, sender.Messages(), 1)
}

func TestHandleDeduplicatesTrackingNumbers(t *testing.T) {
	svc, sender, _ := newService(&stubSource{shipments: []fulfillment.Shipment{shipped()}})
	ev := Event{ResourceType: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/shipments"}

	assert.Equal(t, 1, svc.Handle(context.Background(), ev))
	assert.Equal(t, 0, svc.Handle(context.Background(), ev))
	assert.Len(t, sender.Messages(), 1)
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	src := &stubSource{}
	svc, sender, _ := newService(src)

	for _, ev := range []Event{
		{ResourceType: "ORDER_NOTIFY", ResourceURL: "https://ssapi.shipstation.com/orders"},
		{ResourceType: EventShipNotify},
		{},
	} {
		assert.Zero(t, svc.Handle(context.Background(), ev))
	}
	assert.Empty(t, src.urls)
	assert.Empty(t, sender.Messages())
}

func TestHandleSkipsIncompleteShipments(t *testing.T) {
	noEmail := shipped()
	noEmail.CustomerEmail = ""
	noTracking := shipped()
	noTracking.TrackingNumber = ""
	svc, sender, _ := newService(&stubSource{shipments: []fulfillment.Shipment{noEmail, noTracking}})

	assert.Zero(t, svc.Handle(context.Background(), Event{ResourceType: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/x"}))
	assert.Empty(t, sender.Messages())
}

func TestHandleFailuresAreLoggedOnly(t *testing.T) {
	svc, _, _ := newService(&stubSource{err: errors.New("timeout")})
	assert.Zero(t, svc.Handle(context.Background(), Event{ResourceType: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/x"}))

	svc, sender, repo := newService(&stubSource{shipments: []fulfillment.Shipment{shipped()}})
	sender.Err = errors.New("relay down")
	assert.Zero(t, svc.Handle(context.Background(), Event{ResourceType: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/x"}))
	require.Len(t, repo.All(), 1)
	assert.Equal(t, EmailFailed, repo.All()[0].EmailStatus)

	svc, sender, _ = newService(nil)
	assert.Zero(t, svc.Handle(context.Background(), Event{ResourceType: EventShipNotify, ResourceURL: "https://ssapi.shipstation.com/x"}))
	assert.Empty(t, sender.Messages())
}

func TestPGRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("1Z999").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO shipment_notifications").
		WithArgs("n-1", "1Z999", "ups", EmailSent, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	done, err := repo.AlreadySent(context.Background(), "1Z999")
	require.NoError(t, err)
	assert.True(t, done)
	require.NoError(t, repo.Record(context.Background(), Notification{ID: "n-1", TrackingNumber: "1Z999", CarrierCode: "ups", EmailStatus: EmailSent}))
	require.NoError(t, mock.ExpectationsWereMet())
}
