package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Approved reports whether the booking reached a confirmed or completed
// state. Cancelled and unknown statuses are neither pending nor
// approved.
func (s BookingStatus) Approved() bool {
	return s == BookingConfirmed || s == BookingCompleted
}

// Commission is one agent's share on a booking. A booking may carry
// entries for several agents.
type Commission struct {
	Agent  Ref     `json:"agent"`
	Amount float64 `json:"amount"`
}

// Plot is the unit of property a booking reserves. Like identity
// references it may arrive populated or as a bare id.
type Plot struct {
	ID         string  `json:"_id"`
	PlotNumber string  `json:"plotNumber"`
	Area       float64 `json:"area"`
}

func (p *Plot) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = Plot{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			*p = Plot{}
			return nil
		}
		*p = Plot{ID: id}
	case '{':
		type plain Plot
		var decoded plain
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			*p = Plot{}
			return nil
		}
		*p = Plot(decoded)
	default:
		*p = Plot{}
	}

	return nil
}

// Booking is the client's read-only replica of a server-side booking.
// The authoritative copy lives on the platform; nothing in this client
// mutates it.
type Booking struct {
	ID            string        `json:"_id"`
	BookingNumber string        `json:"bookingNumber"`
	Buyer         Ref           `json:"buyer"`
	Plot          Plot          `json:"plot"`
	Agent         Ref           `json:"agent"`
	Status        BookingStatus `json:"status"`
	TotalAmount   float64       `json:"totalAmount"`
	Commissions   []Commission  `json:"commissions"`
	BookingDate   time.Time     `json:"bookingDate"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// When returns the booking date, falling back to the record's creation
// time when the server omitted it.
func (b Booking) When() time.Time {
	if !b.BookingDate.IsZero() {
		return b.BookingDate
	}
	return b.CreatedAt
}

// CommissionFor returns the amount of the commission entry assigned to
// the given agent. This is a targeted lookup: entries belonging to
// other agents never contribute. A booking without commissions, or
// without an entry for this agent, yields 0.
func (b Booking) CommissionFor(agentID string) float64 {
	for _, commission := range b.Commissions {
		if commission.Agent.MatchesID(agentID) {
			return commission.Amount
		}
	}
	return 0
}
