package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/estate-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewer() domain.Identity {
	return domain.Identity{ID: "U1", Role: domain.RoleAgent, Name: "Vishnu", Email: "v@example.com"}
}

func TestRenderShowsStatsAndBookings(t *testing.T) {
	bookings := []domain.Booking{
		{
			ID:            "booking-000001",
			BookingNumber: "BK-0001",
			Agent:         domain.RefFromID("U1"),
			Buyer:         domain.RefFromIdentity(domain.Identity{ID: "buyer-1", Name: "Asha"}),
			Status:        domain.BookingConfirmed,
			TotalAmount:   500000,
			Commissions:   []domain.Commission{{Agent: domain.RefFromID("U1"), Amount: 15000}},
			BookingDate:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "booking-000002",
			Agent:       domain.RefFromID("U1"),
			Status:      domain.BookingPending,
			TotalAmount: 250000,
			BookingDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	out := Render(viewer(), bookings, RenderOptions{})

	assert.Contains(t, out, "Agent Dashboard")
	assert.Contains(t, out, "Vishnu")
	assert.Contains(t, out, "Total Bookings")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Approved")
	assert.Contains(t, out, "Total Commission")
	assert.Contains(t, out, "₹15,000")
	assert.Contains(t, out, "BK-0001")
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "₹5,00,000")
}

func TestRenderMostRecentBookingFirst(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b-1", BookingNumber: "BK-OLD", Agent: domain.RefFromID("U1"), BookingDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b-2", BookingNumber: "BK-NEW", Agent: domain.RefFromID("U1"), BookingDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := Render(viewer(), bookings, RenderOptions{})

	newIdx := strings.Index(out, "BK-NEW")
	oldIdx := strings.Index(out, "BK-OLD")
	require.GreaterOrEqual(t, newIdx, 0)
	require.GreaterOrEqual(t, oldIdx, 0)
	assert.Less(t, newIdx, oldIdx)
}

func TestRenderCapsRows(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b-1", BookingNumber: "BK-0001", Agent: domain.RefFromID("U1"), BookingDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b-2", BookingNumber: "BK-0002", Agent: domain.RefFromID("U1"), BookingDate: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "b-3", BookingNumber: "BK-0003", Agent: domain.RefFromID("U1"), BookingDate: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
	}

	out := Render(viewer(), bookings, RenderOptions{MaxRows: 2})

	assert.Contains(t, out, "BK-0003")
	assert.Contains(t, out, "BK-0002")
	assert.NotContains(t, out, "BK-0001")
}

func TestRenderIgnoresOtherAgentsBookings(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b-1", BookingNumber: "BK-MINE", Agent: domain.RefFromID("U1"), Status: domain.BookingPending},
		{ID: "b-2", BookingNumber: "BK-THEIRS", Agent: domain.RefFromID("U2"), Status: domain.BookingPending},
	}

	out := Render(viewer(), bookings, RenderOptions{})

	assert.Contains(t, out, "BK-MINE")
	assert.NotContains(t, out, "BK-THEIRS")
}

func TestRenderEmptyBookings(t *testing.T) {
	out := Render(viewer(), nil, RenderOptions{})

	assert.Contains(t, out, "No bookings assigned to you yet.")
	assert.Contains(t, out, "Total Bookings")
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "zero", amount: 0, want: "0"},
		{name: "below grouping", amount: 999, want: "999"},
		{name: "thousands", amount: 1000, want: "1,000"},
		{name: "lakh", amount: 500000, want: "5,00,000"},
		{name: "crore", amount: 12345678, want: "1,23,45,678"},
		{name: "fraction", amount: 1500.5, want: "1,500.50"},
		{name: "negative", amount: -500000, want: "-5,00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(tt.amount))
		})
	}
}
