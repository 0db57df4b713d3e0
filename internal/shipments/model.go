package shipments

import "time"

// EventShipNotify is the ShipStation webhook type for new shipments.
const EventShipNotify = "SHIP_NOTIFY"

// Event is a ShipStation webhook body. Older integrations send the type as "event".
type Event struct {
	ResourceURL  string `json:"resource_url"`
	ResourceType string `json:"resource_type"`
	Event        string `json:"event"`
}

// Type returns the event type from whichever key carried it.
func (e Event) Type() string {
	if e.ResourceType != "" {
		return e.ResourceType
	}
	return e.Event
}

// Notification records a tracking email attempt.
type Notification struct {
	ID             string
	TrackingNumber string
	CarrierCode    string
	EmailStatus    string
	CreatedAt      time.Time
}

const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)
