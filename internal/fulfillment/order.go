package fulfillment

import (
	"fmt"
	"strings"
	"time"

	"intake-backend/internal/intake"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/util"
)

const (
	orderStatusAwaitingShipment = "awaiting_shipment"
	orderDateLayout             = "2006-01-02T15:04:05.0000000"
	warehouseLocation           = "Pharmacy"
	orderNumberBuckets          = 10000
)

// Defaults are the static parts of every order.
type Defaults struct {
	StoreID        string
	UnitPrice      float64
	DefaultCountry string
}

func DefaultsFromConfig(cfg config.ShipStationConfig) Defaults {
	return Defaults{
		StoreID:        cfg.StoreID,
		UnitPrice:      cfg.UnitPrice,
		DefaultCountry: cfg.DefaultCountry,
	}
}

// OrderNumber is WL-<first>-<last>-<n> with n derived from the email.
// Two submissions with the same name and email share a number.
func OrderNumber(rec intake.PatientRecord) string {
	return fmt.Sprintf("WL-%s-%s-%d", rec.FirstName, rec.LastName, util.HashBucket(rec.Email, orderNumberBuckets))
}

// BuildOrder maps a patient record onto a single-item createorder payload.
func BuildOrder(rec intake.PatientRecord, d Defaults, now time.Time) Order {
	country := rec.Country
	if country == "" {
		country = d.DefaultCountry
	}
	if country == "" {
		country = "CA"
	}
	addr := Address{
		Name:       rec.FullName(),
		Street1:    rec.Street,
		City:       rec.City,
		State:      rec.Province,
		PostalCode: rec.PostalCode,
		Country:    country,
		Phone:      rec.Phone,
	}
	key := rec.MedicationKey()
	return Order{
		OrderNumber:      OrderNumber(rec),
		OrderDate:        now.UTC().Format(orderDateLayout),
		OrderStatus:      orderStatusAwaitingShipment,
		CustomerUsername: rec.Email,
		CustomerEmail:    rec.Email,
		BillTo:           addr,
		ShipTo:           addr,
		Items: []Item{{
			LineItemKey:       "WL-" + key,
			SKU:               "WL-" + strings.ToUpper(key),
			Name:              "Weight Loss Consultation - " + key,
			Quantity:          1,
			UnitPrice:         d.UnitPrice,
			Weight:            Weight{Value: 1, Units: "ounces"},
			WarehouseLocation: warehouseLocation,
		}},
		OrderTotal:      d.UnitPrice,
		AmountPaid:      d.UnitPrice,
		InternalNotes:   "Weight Loss Questionnaire Order - " + key,
		Confirmation:    "none",
		AdvancedOptions: AdvancedOptions{StoreID: StoreID(d.StoreID)},
	}
}
