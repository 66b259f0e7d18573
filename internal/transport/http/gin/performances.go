package httpgin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/theatre-go/internal/domain"
)

// @Summary  List performances
// @Tags     performances
// @Security Bearer
// @Param    date  query  string  false  "show date, YYYY-MM-DD (UTC)"
// @Param    play  query  int     false  "play id"
// @Success  200  {array}  PerformanceListResponse
// @Router   /api/v1/theatre/performances [get]
func (a *api) listPerformances(c *gin.Context) {
	var f domain.PerformanceFilter

	if s := c.Query("date"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: map[string]string{"date": "expected YYYY-MM-DD"}})
			return
		}
		f.Date = &d
	}

	if s := c.Query("play"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: map[string]string{"play": "expected an integer id"}})
			return
		}
		f.PlayID = &id
	}

	perfs, err := a.svcs.Query.ListPerformances(c.Request.Context(), f)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	out := make([]PerformanceListResponse, 0, len(perfs))
	for _, p := range perfs {
		out = append(out, toPerformanceListItem(p))
	}
	writeJSONWithETag(c, http.StatusOK, out)
}

// @Summary  Get performance with taken seats
// @Tags     performances
// @Security Bearer
// @Param    id  path  int  true  "Performance ID"
// @Success  200  {object}  PerformanceDetailResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/theatre/performances/{id} [get]
func (a *api) getPerformance(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	p, err := a.svcs.Query.GetPerformance(c.Request.Context(), id)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	writeJSONWithETag(c, http.StatusOK, PerformanceDetailResponse{
		ID:          p.ID,
		ShowTime:    p.ShowTime,
		Play:        toPlayListItem(p.Play),
		TheatreHall: toHall(p.TheatreHall),
		TakenPlaces: nonNilSlice(p.TakenPlaces),
	})
}

// @Summary  Create performance
// @Tags     performances
// @Security Bearer
// @Param    req  body  PerformanceRequest  true  "payload"
// @Success  201  {object}  PerformanceResponse
// @Router   /api/v1/theatre/performances [post]
func (a *api) createPerformance(c *gin.Context) {
	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	p, err := a.svcs.Admin.CreatePerformance(c.Request.Context(), domain.Performance{
		PlayID:        req.Play,
		TheatreHallID: req.TheatreHall,
		ShowTime:      req.ShowTime,
	})
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toPerformance(p))
}

// @Summary  Update performance
// @Tags     performances
// @Security Bearer
// @Param    id   path  int                 true  "Performance ID"
// @Param    req  body  PerformanceRequest  true  "payload"
// @Success  200  {object}  PerformanceResponse
// @Router   /api/v1/theatre/performances/{id} [put]
func (a *api) updatePerformance(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	p := domain.Performance{ID: id, PlayID: req.Play, TheatreHallID: req.TheatreHall, ShowTime: req.ShowTime}
	if err := a.svcs.Admin.UpdatePerformance(c.Request.Context(), p); err != nil {
		respondErr(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, toPerformance(p))
}

// @Summary  Delete performance and its tickets
// @Tags     performances
// @Security Bearer
// @Param    id  path  int  true  "Performance ID"
// @Success  204
// @Router   /api/v1/theatre/performances/{id} [delete]
func (a *api) deletePerformance(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := a.svcs.Admin.DeletePerformance(c.Request.Context(), id); err != nil {
		respondErr(c, a.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toPerformance(p domain.Performance) PerformanceResponse {
	return PerformanceResponse{ID: p.ID, ShowTime: p.ShowTime, Play: p.PlayID, TheatreHall: p.TheatreHallID}
}
