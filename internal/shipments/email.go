package shipments

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"intake-backend/internal/fulfillment"
)

// TrackingSubject is the subject of every shipment notification.
const TrackingSubject = "Your City Life Pharmacy Order Has Shipped!"

type trackingView struct {
	Carrier  string
	Service  string
	Tracking string
	Link     string
}

var trackingTemplate = template.Must(template.New("tracking").Parse(`<div style="font-family: Arial, sans-serif; font-size: 14px; line-height: 1.5;">
<p>Hi,</p>
<p>Your order has been shipped via {{.Carrier}}{{if .Service}} ({{.Service}}){{end}}.<br>
Tracking Number: <strong>{{.Tracking}}</strong></p>
<p>You can track it here: <a href="{{.Link}}">{{.Link}}</a></p>
<p>Thank you for choosing City Life Pharmacy!</p>
</div>`))

func trackingLink(carrier, tracking string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(strings.TrimSpace(carrier+" tracking "+tracking))
}

func renderTracking(s fulfillment.Shipment) (html, text string, err error) {
	view := trackingView{
		Carrier:  strings.ToUpper(s.CarrierCode),
		Service:  s.ServiceCode,
		Tracking: s.TrackingNumber,
		Link:     trackingLink(s.CarrierCode, s.TrackingNumber),
	}
	var buf bytes.Buffer
	if err := trackingTemplate.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("render tracking email: %w", err)
	}
	via := view.Carrier
	if view.Service != "" {
		via += " (" + view.Service + ")"
	}
	text = "Hi,\n\n" +
		"Your order has been shipped via " + via + ".\n" +
		"Tracking Number: " + view.Tracking + "\n\n" +
		"You can track it here: " + view.Link + "\n\n" +
		"Thank you for choosing City Life Pharmacy!\n"
	return buf.String(), text, nil
}
