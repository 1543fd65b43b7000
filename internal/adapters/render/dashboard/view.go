package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/estate-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
	// MaxRows bounds the recent-bookings table. Zero means the default
	// of 10 rows.
	MaxRows int
}

const defaultMaxRows = 10

// Render draws the agent dashboard: stat cards derived from the booking
// collection, then the viewer's most recent bookings. It only reads the
// snapshot it is handed; derivation happens in the domain layer.
func Render(viewer domain.Identity, bookings []domain.Booking, opts RenderOptions) string {
	return renderView(viewer, bookings, opts, newStyles())
}

func renderView(viewer domain.Identity, bookings []domain.Booking, opts RenderOptions, s styles) string {
	aggregate := domain.DeriveAgentAggregate(bookings, viewer.ID)
	mine := domain.AgentBookings(bookings, viewer.ID)

	lines := []string{
		s.title.Render("Agent Dashboard"),
		s.header.Render(fmt.Sprintf("%s · %s", viewer.Name, viewer.Email)),
		s.section.Render(statCards(aggregate, s)),
	}

	lines = append(lines, s.section.Render(recentBookings(mine, viewer.ID, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statCards(aggregate domain.AgentAggregate, s styles) string {
	cards := []string{
		statCard(fmt.Sprintf("%d", aggregate.TotalBookings), "Total Bookings", s.statValue, s),
		statCard(fmt.Sprintf("%d", aggregate.PendingBookings), "Pending", s.pending, s),
		statCard(fmt.Sprintf("%d", aggregate.ApprovedBookings), "Approved", s.approved, s),
		statCard("₹"+FormatINR(aggregate.TotalCommission), "Total Commission", s.money, s),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(value, label string, valueStyle lipgloss.Style, s styles) string {
	card := lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Render(value),
		s.statLabel.Render(label),
	)

	return lipgloss.NewStyle().PaddingRight(4).Render(card)
}

func recentBookings(bookings []domain.Booking, viewerID string, opts RenderOptions, s styles) string {
	if len(bookings) == 0 {
		return s.empty.Render("No bookings assigned to you yet.")
	}

	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	ordered := append([]domain.Booking(nil), bookings...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].When().After(ordered[j].When())
	})
	if len(ordered) > maxRows {
		ordered = ordered[:maxRows]
	}

	lines := []string{s.header.Render("Recent Bookings")}
	for _, booking := range ordered {
		lines = append(lines, bookingLine(booking, viewerID, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func bookingLine(booking domain.Booking, viewerID string, s styles) string {
	parts := []string{
		s.detail.Render(bookingLabel(booking)),
		s.detail.Render(buyerLabel(booking.Buyer)),
		s.detail.Render("₹" + FormatINR(booking.TotalAmount)),
		s.money.Render("₹" + FormatINR(booking.CommissionFor(viewerID))),
		statusStyle(booking.Status, s).Render(string(booking.Status)),
	}

	if when := booking.When(); !when.IsZero() {
		parts = append(parts, s.faint.Render(when.Format("02 Jan 2006")))
	}

	return strings.Join(parts, "  ")
}

func bookingLabel(booking domain.Booking) string {
	if booking.BookingNumber != "" {
		return booking.BookingNumber
	}
	if len(booking.ID) > 6 {
		return "#" + booking.ID[len(booking.ID)-6:]
	}
	return "#" + booking.ID
}

func buyerLabel(buyer domain.Ref) string {
	if name := buyer.Name(); name != "" {
		return name
	}
	if buyer.ID != "" {
		return buyer.ID
	}
	return "unknown buyer"
}

func statusStyle(status domain.BookingStatus, s styles) lipgloss.Style {
	switch status {
	case domain.BookingPending:
		return s.pending
	case domain.BookingConfirmed, domain.BookingCompleted:
		return s.approved
	case domain.BookingCancelled:
		return s.cancelled
	default:
		return s.detail
	}
}

// FormatINR renders an amount with Indian digit grouping: the last
// three digits form one group, the rest pair up (₹5,00,000).
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := int64(amount)
	digits := fmt.Sprintf("%d", whole)

	var grouped string
	if len(digits) <= 3 {
		grouped = digits
	} else {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]

		var headGroups []string
		for len(head) > 2 {
			headGroups = append([]string{head[len(head)-2:]}, headGroups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			headGroups = append([]string{head}, headGroups...)
		}

		grouped = strings.Join(headGroups, ",") + "," + tail
	}

	if fraction := amount - float64(whole); fraction >= 0.005 {
		grouped += strings.TrimPrefix(fmt.Sprintf("%.2f", fraction), "0")
	}

	if negative {
		return "-" + grouped
	}
	return grouped
}
