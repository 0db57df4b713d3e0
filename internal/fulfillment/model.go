package fulfillment

import (
	"encoding/json"
	"strconv"
)

// Order is the ShipStation createorder payload.
type Order struct {
	OrderNumber      string          `json:"orderNumber"`
	OrderDate        string          `json:"orderDate"`
	OrderStatus      string          `json:"orderStatus"`
	CustomerUsername string          `json:"customerUsername"`
	CustomerEmail    string          `json:"customerEmail"`
	BillTo           Address         `json:"billTo"`
	ShipTo           Address         `json:"shipTo"`
	Items            []Item          `json:"items"`
	OrderTotal       float64         `json:"orderTotal"`
	AmountPaid       float64         `json:"amountPaid"`
	TaxAmount        float64         `json:"taxAmount"`
	ShippingAmount   float64         `json:"shippingAmount"`
	InternalNotes    string          `json:"internalNotes,omitempty"`
	Confirmation     string          `json:"confirmation,omitempty"`
	AdvancedOptions  AdvancedOptions `json:"advancedOptions"`
}

type Address struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Street1    string `json:"street1"`
	Street2    string `json:"street2"`
	Street3    string `json:"street3"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type Item struct {
	LineItemKey       string  `json:"lineItemKey"`
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	Weight            Weight  `json:"weight"`
	WarehouseLocation string  `json:"warehouseLocation"`
}

type Weight struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

type AdvancedOptions struct {
	StoreID StoreID `json:"storeId,omitempty"`
}

// StoreID is sent as a JSON number when it is numeric and as a string otherwise.
type StoreID string

func (s StoreID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(s))
}

// CreatedOrder is the subset of the createorder response we keep.
type CreatedOrder struct {
	OrderID     int64  `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	OrderKey    string `json:"orderKey"`
	OrderStatus string `json:"orderStatus"`
}

// Store is one entry from GET /stores.
type Store struct {
	StoreID         int64  `json:"storeId"`
	StoreName       string `json:"storeName"`
	MarketplaceName string `json:"marketplaceName"`
	Active          bool   `json:"active"`
}

// Shipment is one entry from a SHIP_NOTIFY resource.
type Shipment struct {
	ShipmentID     int64   `json:"shipmentId"`
	OrderNumber    string  `json:"orderNumber"`
	CustomerEmail  string  `json:"customerEmail"`
	TrackingNumber string  `json:"trackingNumber"`
	CarrierCode    string  `json:"carrierCode"`
	ServiceCode    string  `json:"serviceCode"`
	ShipDate       string  `json:"shipDate"`
	ShipTo         Address `json:"shipTo"`
}
