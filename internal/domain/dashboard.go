package domain

// AgentAggregate is the role-scoped summary shown on an agent's
// dashboard. It is derived on every read and never persisted.
type AgentAggregate struct {
	TotalBookings    int     `json:"totalBookings"`
	PendingBookings  int     `json:"pendingBookings"`
	ApprovedBookings int     `json:"approvedBookings"`
	TotalCommission  float64 `json:"totalCommission"`
}

// AgentBookings filters a booking collection down to the bookings
// assigned to the given agent, matching either a populated agent
// reference or a bare id. The input is never mutated.
func AgentBookings(bookings []Booking, viewerID string) []Booking {
	if viewerID == "" {
		return nil
	}

	matched := make([]Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Agent.MatchesID(viewerID) {
			matched = append(matched, booking)
		}
	}
	return matched
}

// DeriveAgentAggregate computes the viewer's booking counters and
// commission total from a raw booking collection.
//
// Pending counts status "pending"; approved counts "confirmed" and
// "completed"; cancelled bookings count toward neither. The commission
// sum has no status filter, so a cancelled booking's commission still
// contributes — that mirrors the platform's own accounting and is
// pinned by tests rather than corrected here.
//
// Records missing commissions, agent references or amounts contribute 0
// instead of failing the whole derivation.
func DeriveAgentAggregate(bookings []Booking, viewerID string) AgentAggregate {
	var aggregate AgentAggregate
	if viewerID == "" {
		return aggregate
	}

	for _, booking := range bookings {
		if !booking.Agent.MatchesID(viewerID) {
			continue
		}

		aggregate.TotalBookings++
		switch {
		case booking.Status == BookingPending:
			aggregate.PendingBookings++
		case booking.Status.Approved():
			aggregate.ApprovedBookings++
		}
		aggregate.TotalCommission += booking.CommissionFor(viewerID)
	}

	return aggregate
}
