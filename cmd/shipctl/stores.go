package main

import (
	"fmt"
	"io"
	"strings"

	"intake-backend/internal/fulfillment"
)

func printStores(w io.Writer, stores []fulfillment.Store) {
	fmt.Fprintln(w, "Available ShipStation stores:")
	for _, s := range stores {
		fmt.Fprintf(w, "  %-8d %-32s %-16s active=%t\n", s.StoreID, s.StoreName, s.MarketplaceName, s.Active)
	}
}

func findPharmacyStore(stores []fulfillment.Store) (fulfillment.Store, bool) {
	for _, s := range stores {
		name := strings.ToLower(s.StoreName)
		if strings.Contains(name, "city life") || strings.Contains(name, "citylife") {
			return s, true
		}
	}
	return fulfillment.Store{}, false
}
