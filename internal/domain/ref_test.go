package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Ref
	}{
		{name: "bare id", payload: `"U1"`, want: Ref{ID: "U1"}},
		{name: "populated identity", payload: `{"_id":"U1","name":"Vishnu","email":"v@example.com","role":"Agent"}`, want: Ref{ID: "U1", Identity: &Identity{ID: "U1", Name: "Vishnu", Email: "v@example.com", Role: RoleAgent}}},
		{name: "null", payload: `null`, want: Ref{}},
		{name: "unexpected number coerces to zero", payload: `42`, want: Ref{}},
		{name: "unexpected array coerces to zero", payload: `[1,2]`, want: Ref{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Ref
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &ref))
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestRefMatchesID(t *testing.T) {
	tests := []struct {
		name string
		ref  Ref
		id   string
		want bool
	}{
		{name: "bare id match", ref: RefFromID("U1"), id: "U1", want: true},
		{name: "populated match", ref: RefFromIdentity(Identity{ID: "U1"}), id: "U1", want: true},
		{name: "mismatch", ref: RefFromID("U2"), id: "U1", want: false},
		{name: "zero ref", ref: Ref{}, id: "U1", want: false},
		{name: "empty id never matches", ref: Ref{}, id: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.MatchesID(tt.id))
		})
	}
}

func TestRefMarshalRoundTrip(t *testing.T) {
	populated := RefFromIdentity(Identity{ID: "U1", Name: "Vishnu"})
	data, err := json.Marshal(populated)
	require.NoError(t, err)

	var decoded Ref
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, populated, decoded)

	bare, err := json.Marshal(RefFromID("U2"))
	require.NoError(t, err)
	assert.Equal(t, `"U2"`, string(bare))

	zero, err := json.Marshal(Ref{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(zero))
}

func TestBookingDecodeAcceptsMixedReferenceShapes(t *testing.T) {
	payload := `{
		"_id": "b-1",
		"bookingNumber": "BK-0001",
		"buyer": {"_id": "buyer-1", "name": "Asha", "email": "asha@example.com"},
		"plot": {"_id": "plot-1", "plotNumber": "A-12", "area": 1200},
		"agent": "U1",
		"status": "confirmed",
		"totalAmount": 500000,
		"commissions": [{"agent": "U1", "amount": 15000}]
	}`

	var booking Booking
	require.NoError(t, json.Unmarshal([]byte(payload), &booking))

	assert.Equal(t, "BK-0001", booking.BookingNumber)
	assert.True(t, booking.Agent.MatchesID("U1"))
	assert.Equal(t, "Asha", booking.Buyer.Name())
	assert.Equal(t, "A-12", booking.Plot.PlotNumber)
	assert.Equal(t, 15000.0, booking.CommissionFor("U1"))
}

func TestPlotDecodeBareID(t *testing.T) {
	var booking Booking
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b-1","plot":"plot-9"}`), &booking))
	assert.Equal(t, "plot-9", booking.Plot.ID)
}

func TestBookingWhenFallsBackToCreatedAt(t *testing.T) {
	var booking Booking
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b-1","createdAt":"2026-03-01T10:00:00Z"}`), &booking))

	assert.Equal(t, booking.CreatedAt, booking.When())
	assert.False(t, booking.When().IsZero())
}
