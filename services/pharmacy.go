package services

import (
	"fmt"
	"strings"
	"sync"
)

// PharmacyNetwork simulates the dispensing side: prescription status,
// refills, transfers and pickup notifications.
type PharmacyNetwork struct {
	mu            sync.Mutex
	prescriptions map[string]*Prescription
	pharmacies    []Pharmacy
}

// NewPharmacyNetwork builds the network with its demo fixtures.
func NewPharmacyNetwork() *PharmacyNetwork {
	return &PharmacyNetwork{
		prescriptions: map[string]*Prescription{
			"RX1001": {
				RxNumber: "RX1001", DrugName: "Metformin HCl 500 mg", NDC: "00093-7267-01",
				Status: "ready_for_pickup", Pharmacy: "Main Street Pharmacy",
				RefillsLeft: 3, LastFilled: "2025-08-01", ReadyDate: "2025-08-28",
			},
			"RX1002": {
				RxNumber: "RX1002", DrugName: "Lipitor 20 mg", NDC: "00071-0155-23",
				Status: "in_progress", Pharmacy: "Main Street Pharmacy",
				RefillsLeft: 1, LastFilled: "2025-07-15",
			},
			"RX1003": {
				RxNumber: "RX1003", DrugName: "Advair Diskus 250/50", NDC: "00173-0715-20",
				Status: "refill_due", Pharmacy: "Downtown Health Pharmacy",
				RefillsLeft: 0, LastFilled: "2025-06-20",
			},
		},
		pharmacies: []Pharmacy{
			{NPI: "1234567890", Name: "Main Street Pharmacy", Address: "100 Main St", Phone: "555-0123", Open24h: false},
			{NPI: "1234567891", Name: "Downtown Health Pharmacy", Address: "42 Center Ave", Phone: "555-0145", Open24h: true},
			{NPI: "1234567892", Name: "Northside Drugs", Address: "9 Elm Rd", Phone: "555-0168", Open24h: false},
		},
	}
}

// PrescriptionStatus returns the current state of a prescription.
func (n *PharmacyNetwork) PrescriptionStatus(rxNumber string) (Prescription, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	rx, ok := n.prescriptions[strings.ToUpper(rxNumber)]
	if !ok {
		return Prescription{}, false
	}
	return *rx, true
}

// RequestRefill submits a refill for a prescription.
func (n *PharmacyNetwork) RequestRefill(rxNumber string) map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	rx, ok := n.prescriptions[strings.ToUpper(rxNumber)]
	if !ok {
		return map[string]any{"accepted": false, "message": fmt.Sprintf("No prescription found with number %s.", rxNumber)}
	}
	if rx.RefillsLeft == 0 {
		return map[string]any{
			"accepted": false,
			"message":  "No refills remaining. A new prescription from the prescriber is required.",
		}
	}
	rx.RefillsLeft--
	rx.Status = "in_progress"
	return map[string]any{
		"accepted":      true,
		"rx_number":     rx.RxNumber,
		"pharmacy":      rx.Pharmacy,
		"refills_left":  rx.RefillsLeft,
		"estimated_day": "tomorrow",
	}
}

// TransferPrescription moves a prescription to another pharmacy.
func (n *PharmacyNetwork) TransferPrescription(rxNumber, targetPharmacy string) map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	rx, ok := n.prescriptions[strings.ToUpper(rxNumber)]
	if !ok {
		return map[string]any{"transferred": false, "message": fmt.Sprintf("No prescription found with number %s.", rxNumber)}
	}
	previous := rx.Pharmacy
	rx.Pharmacy = targetPharmacy
	return map[string]any{
		"transferred": true,
		"rx_number":   rx.RxNumber,
		"from":        previous,
		"to":          targetPharmacy,
	}
}

// FindPharmacies searches the network by name or address fragment. An empty
// query lists the whole network.
func (n *PharmacyNetwork) FindPharmacies(query string) []Pharmacy {
	n.mu.Lock()
	defer n.mu.Unlock()
	if query == "" {
		return append([]Pharmacy(nil), n.pharmacies...)
	}
	queryLower := strings.ToLower(query)
	var matches []Pharmacy
	for _, ph := range n.pharmacies {
		if strings.Contains(strings.ToLower(ph.Name), queryLower) ||
			strings.Contains(strings.ToLower(ph.Address), queryLower) {
			matches = append(matches, ph)
		}
	}
	return matches
}

// PickupNotifications lists prescriptions that are ready for pickup.
func (n *PharmacyNetwork) PickupNotifications() []Prescription {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ready []Prescription
	for _, rx := range n.prescriptions {
		if rx.Status == "ready_for_pickup" {
			ready = append(ready, *rx)
		}
	}
	return ready
}
