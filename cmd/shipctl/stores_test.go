package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"intake-backend/internal/fulfillment"
)

func TestFindPharmacyStore(t *testing.T) {
	stores := []fulfillment.Store{
		{StoreID: 1, StoreName: "Manual Orders"},
		{StoreID: 2, StoreName: "CityLife Web"},
	}
	got, ok := findPharmacyStore(stores)
	assert.True(t, ok)
	assert.Equal(t, int64(2), got.StoreID)

	_, ok = findPharmacyStore(stores[:1])
	assert.False(t, ok)
}

func TestPrintStores(t *testing.T) {
	var buf bytes.Buffer
	printStores(&buf, []fulfillment.Store{{StoreID: 42, StoreName: "City Life Pharmacy", MarketplaceName: "Manual", Active: true}})
	assert.Contains(t, buf.String(), "City Life Pharmacy")
	assert.Contains(t, buf.String(), "active=true")
}
