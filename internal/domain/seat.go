package domain

import "fmt"

// ValidateSeat checks that row and seat fall inside the hall grid.
// Row is checked before seat; the first failing field is reported.
func ValidateSeat(row, seat int, hall TheatreHall) *FieldError {
	checks := []struct {
		value    int
		field    string
		hallAttr string
		max      int
	}{
		{row, "row", "rows", hall.Rows},
		{seat, "seat", "seats_in_row", hall.SeatsInRow},
	}

	for _, c := range checks {
		if c.value < 1 || c.value > c.max {
			return &FieldError{
				Field: c.field,
				Message: fmt.Sprintf(
					"%s number must be in available range: (1, %s): (1, %d)",
					c.field, c.hallAttr, c.max,
				),
			}
		}
	}

	return nil
}

// NewTicket builds a ticket for a performance held in hall, rejecting seats
// outside the hall grid.
func NewTicket(performanceID int64, row, seat int, hall TheatreHall) (Ticket, error) {
	if fe := ValidateSeat(row, seat, hall); fe != nil {
		return Ticket{}, &ValidationError{Fields: []FieldError{*fe}}
	}

	return Ticket{
		PerformanceID: performanceID,
		Row:           row,
		Seat:          seat,
	}, nil
}

// TicketsAvailable is the hall capacity minus the number of booked tickets.
// The result is not clamped; a negative value means the data is corrupt.
func TicketsAvailable(hall TheatreHall, booked int) int {
	return hall.TotalSeating() - booked
}
