package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/theatre-go/internal/domain"
	redisrepo "github.com/kirinyoku/theatre-go/internal/repository/redis"
)

const idemLockTTL = 30 * time.Second

// @Summary  Reserve seats (idempotent with Idempotency-Key)
// @Tags     reservations
// @Security Bearer
// @Param    Idempotency-Key  header  string                    false  "replays the first response for the same key"
// @Param    req              body    CreateReservationRequest  true   "payload"
// @Success  201  {object}  ReservationResponse
// @Failure  400  {object}  ErrorResponse  "seat outside the hall or already taken"
// @Failure  404  {object}  ErrorResponse  "unknown performance"
// @Failure  409  {object}  ErrorResponse  "same Idempotency-Key in progress"
// @Failure  422  {object}  ErrorResponse  "Idempotency-Key reused with a different request"
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /api/v1/theatre/reservations [post]
func (a *api) createReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := identity(c).UserID

	tickets := make([]domain.TicketRequest, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		tickets = append(tickets, domain.TicketRequest{PerformanceID: t.Performance, Row: *t.Row, Seat: *t.Seat})
	}

	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	var storageKey, fingerprint string
	if a.idem != nil && idemKey != "" {
		storageKey = redisrepo.KeyIdemReservation(userID, idemKey)
		fingerprint = ticketsFingerprint(tickets)

		if a.answerStored(c, storageKey, idemKey, fingerprint) {
			return
		}

		locked, err := a.idem.AcquireLock(ctx, storageKey, fingerprint, idemLockTTL)
		if err != nil {
			respondErr(c, a.logger, err)
			return
		}
		if !locked {
			if a.answerStored(c, storageKey, idemKey, fingerprint) {
				return
			}
			c.Header("Retry-After", "1")
			c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
			return
		}
	}

	res, err := a.svcs.Reservation.Create(ctx, userID, tickets)
	if err != nil {
		if storageKey != "" {
			_ = a.idem.Release(ctx, storageKey)
		}
		respondErr(c, a.logger, err)
		return
	}

	resp := toReservation(res)

	if storageKey != "" {
		b, _ := json.Marshal(resp)
		_ = a.idem.SaveResult(ctx, storageKey, fingerprint, string(b))
		c.Header("Idempotency-Key", idemKey)
	}

	c.JSON(http.StatusCreated, resp)
}

// answerStored responds from what the idempotency store holds for the key,
// if anything. A key claimed by a different request body is refused.
func (a *api) answerStored(c *gin.Context, storageKey, idemKey, fingerprint string) bool {
	e, ok, err := a.idem.Lookup(c.Request.Context(), storageKey)
	if err != nil || !ok {
		return false
	}

	switch {
	case e.Fingerprint != fingerprint:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "idempotency key was used with a different request"})
	case e.InFlight:
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
	default:
		c.Header("Idempotency-Key", idemKey)
		c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(e.Payload))
	}

	return true
}

// ticketsFingerprint identifies a reservation request independently of how
// its JSON was formatted.
func ticketsFingerprint(tickets []domain.TicketRequest) string {
	h := sha256.New()
	for _, t := range tickets {
		fmt.Fprintf(h, "%d/%d/%d;", t.PerformanceID, t.Row, t.Seat)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// @Summary  List the caller's reservations
// @Tags     reservations
// @Security Bearer
// @Param    limit   query  int  false  "page size (default 10, max 100)"
// @Param    offset  query  int  false  "offset"
// @Success  200  {object}  ReservationPage
// @Router   /api/v1/theatre/reservations [get]
func (a *api) listReservations(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 0)
	offset := parseIntDefault(c.Query("offset"), 0)

	p, err := a.svcs.Reservation.List(c.Request.Context(), identity(c).UserID, limit, offset)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	page := ReservationPage{Count: p.Total, Results: make([]ReservationListItem, 0, len(p.Items))}
	for _, r := range p.Items {
		page.Results = append(page.Results, toReservationListItem(r))
	}

	if p.Offset+p.Limit < p.Total {
		page.Next = pageLink(c, p.Limit, p.Offset+p.Limit)
	}
	if p.Offset > 0 {
		page.Previous = pageLink(c, p.Limit, max(p.Offset-p.Limit, 0))
	}

	c.JSON(http.StatusOK, page)
}

func pageLink(c *gin.Context, limit, offset int) *string {
	u := url.URL{Path: c.Request.URL.Path}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	s := u.String()
	return &s
}
