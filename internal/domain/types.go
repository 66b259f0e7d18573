package domain

import (
	"time"
)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Actor struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

type TheatreHall struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
}

// TotalSeating is the number of seats in the hall grid.
func (h TheatreHall) TotalSeating() int {
	return h.Rows * h.SeatsInRow
}

type Play struct {
	ID          int64
	Title       string
	Description string
	Image       *string
	GenreIDs    []int64
	ActorIDs    []int64
}

// PlayListItem is a play with its genres and actors flattened to names.
type PlayListItem struct {
	ID     int64
	Title  string
	Image  *string
	Genres []string
	Actors []string
}

type PlayDetail struct {
	ID          int64
	Title       string
	Description string
	Image       *string
	Genres      []Genre
	Actors      []Actor
}

type PlayFilter struct {
	Title    string
	GenreIDs []int64
	ActorIDs []int64
}

type Performance struct {
	ID            int64
	PlayID        int64
	TheatreHallID int64
	ShowTime      time.Time
}

// PerformanceListItem is a performance annotated with its open-seat count.
type PerformanceListItem struct {
	ID                      int64
	ShowTime                time.Time
	PlayTitle               string
	PlayImage               *string
	TheatreHallName         string
	TheatreHallTotalSeating int
	TicketsAvailable        int
}

type PerformanceDetail struct {
	ID          int64
	ShowTime    time.Time
	Play        PlayListItem
	TheatreHall TheatreHall
	TakenPlaces []Seat
}

type PerformanceFilter struct {
	Date   *time.Time
	PlayID *int64
}

// Seat is a (row, seat-number) coordinate within a hall.
type Seat struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type Ticket struct {
	ID            int64
	PerformanceID int64
	ReservationID *int64
	Row           int
	Seat          int
}

type Reservation struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

// ReservationTicket is a ticket together with the performance it admits to.
type ReservationTicket struct {
	ID          int64
	Row         int
	Seat        int
	Performance PerformanceListItem
}

type ReservationWithTickets struct {
	ID        int64
	CreatedAt time.Time
	Tickets   []ReservationTicket
}

// TicketRequest is one seat asked for in a reservation request.
type TicketRequest struct {
	PerformanceID int64
	Row           int
	Seat          int
}
