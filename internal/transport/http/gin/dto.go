package httpgin

import (
	"time"

	"github.com/kirinyoku/theatre-go/internal/domain"
)

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

type CreateActorRequest struct {
	FirstName string `json:"first_name" binding:"required,max=128"`
	LastName  string `json:"last_name" binding:"required,max=128"`
}

type CreateHallRequest struct {
	Name       string `json:"name" binding:"required,max=128"`
	Rows       int    `json:"rows" binding:"required,gt=0"`
	SeatsInRow int    `json:"seats_in_row" binding:"required,gt=0"`
}

type CreatePlayRequest struct {
	Title       string  `json:"title" binding:"required,max=128"`
	Description string  `json:"description"`
	Genres      []int64 `json:"genres" binding:"dive,gt=0"`
	Actors      []int64 `json:"actors" binding:"dive,gt=0"`
}

// PerformanceRequest is used for both create and full update.
type PerformanceRequest struct {
	Play        int64     `json:"play" binding:"required,gt=0"`
	TheatreHall int64     `json:"theatre_hall" binding:"required,gt=0"`
	ShowTime    time.Time `json:"show_time" binding:"required"`
}

// TicketInput leaves range checks on row and seat to the hall geometry, so
// binding only rejects missing values.
type TicketInput struct {
	Performance int64 `json:"performance" binding:"required,gt=0"`
	Row         *int  `json:"row" binding:"required"`
	Seat        *int  `json:"seat" binding:"required"`
}

type CreateReservationRequest struct {
	Tickets []TicketInput `json:"tickets" binding:"required,min=1,dive"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type ActorResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type HallResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	TotalSeating int    `json:"total_seating"`
}

type PlayResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Genres      []int64 `json:"genres"`
	Actors      []int64 `json:"actors"`
	Image       *string `json:"image"`
}

type PlayListResponse struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Actors []string `json:"actors"`
	Image  *string  `json:"image"`
}

type PlayDetailResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Genres      []domain.Genre  `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
	Image       *string         `json:"image"`
}

type PlayImageResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

type PerformanceResponse struct {
	ID          int64     `json:"id"`
	ShowTime    time.Time `json:"show_time"`
	Play        int64     `json:"play"`
	TheatreHall int64     `json:"theatre_hall"`
}

type PerformanceListResponse struct {
	ID                      int64     `json:"id"`
	ShowTime                time.Time `json:"show_time"`
	PlayTitle               string    `json:"play_title"`
	PlayImage               *string   `json:"play_image"`
	TheatreHallName         string    `json:"theatre_hall_name"`
	TheatreHallTotalSeating int       `json:"theatre_hall_total_seating"`
	TicketsAvailable        int       `json:"tickets_available"`
}

type PerformanceDetailResponse struct {
	ID          int64            `json:"id"`
	ShowTime    time.Time        `json:"show_time"`
	Play        PlayListResponse `json:"play"`
	TheatreHall HallResponse     `json:"theatre_hall"`
	TakenPlaces []domain.Seat    `json:"taken_places"`
}

type TicketResponse struct {
	ID          int64 `json:"id"`
	Row         int   `json:"row"`
	Seat        int   `json:"seat"`
	Performance int64 `json:"performance"`
}

type ReservationResponse struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

type TicketListResponse struct {
	ID          int64                   `json:"id"`
	Row         int                     `json:"row"`
	Seat        int                     `json:"seat"`
	Performance PerformanceListResponse `json:"performance"`
}

type ReservationListItem struct {
	ID        int64                `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Tickets   []TicketListResponse `json:"tickets"`
}

// ReservationPage is one page of the caller's reservations.
type ReservationPage struct {
	Count    int                   `json:"count"`
	Next     *string               `json:"next"`
	Previous *string               `json:"previous"`
	Results  []ReservationListItem `json:"results"`
}

func toActor(a domain.Actor) ActorResponse {
	return ActorResponse{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName()}
}

func toHall(h domain.TheatreHall) HallResponse {
	return HallResponse{
		ID:           h.ID,
		Name:         h.Name,
		Rows:         h.Rows,
		SeatsInRow:   h.SeatsInRow,
		TotalSeating: h.TotalSeating(),
	}
}

func toPlayListItem(p domain.PlayListItem) PlayListResponse {
	return PlayListResponse{
		ID:     p.ID,
		Title:  p.Title,
		Genres: nonNilStrings(p.Genres),
		Actors: nonNilStrings(p.Actors),
		Image:  p.Image,
	}
}

func toPerformanceListItem(p domain.PerformanceListItem) PerformanceListResponse {
	return PerformanceListResponse(p)
}

func toReservation(r *domain.Reservation) ReservationResponse {
	out := ReservationResponse{ID: r.ID, CreatedAt: r.CreatedAt, Tickets: make([]TicketResponse, 0, len(r.Tickets))}
	for _, t := range r.Tickets {
		out.Tickets = append(out.Tickets, TicketResponse{
			ID:          t.ID,
			Row:         t.Row,
			Seat:        t.Seat,
			Performance: t.PerformanceID,
		})
	}

	return out
}

func toReservationListItem(r domain.ReservationWithTickets) ReservationListItem {
	out := ReservationListItem{ID: r.ID, CreatedAt: r.CreatedAt, Tickets: make([]TicketListResponse, 0, len(r.Tickets))}
	for _, t := range r.Tickets {
		out.Tickets = append(out.Tickets, TicketListResponse{
			ID:          t.ID,
			Row:         t.Row,
			Seat:        t.Seat,
			Performance: toPerformanceListItem(t.Performance),
		})
	}

	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
