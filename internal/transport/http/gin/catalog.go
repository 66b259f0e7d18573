package httpgin

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/theatre-go/internal/domain"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// @Summary  List genres
// @Tags     catalog
// @Security Bearer
// @Success  200  {array}  domain.Genre
// @Router   /api/v1/theatre/genres [get]
func (a *api) listGenres(c *gin.Context) {
	genres, err := a.svcs.Query.ListGenres(c.Request.Context())
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}
	writeJSONWithETag(c, http.StatusOK, nonNilSlice(genres))
}

// @Summary  Create genre
// @Tags     catalog
// @Security Bearer
// @Param    req  body  CreateGenreRequest  true  "payload"
// @Success  201  {object}  domain.Genre
// @Failure  403  {object}  ErrorResponse
// @Router   /api/v1/theatre/genres [post]
func (a *api) createGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	g, err := a.svcs.Admin.CreateGenre(c.Request.Context(), req.Name)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// @Summary  List actors
// @Tags     catalog
// @Security Bearer
// @Success  200  {array}  ActorResponse
// @Router   /api/v1/theatre/actors [get]
func (a *api) listActors(c *gin.Context) {
	actors, err := a.svcs.Query.ListActors(c.Request.Context())
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	out := make([]ActorResponse, 0, len(actors))
	for _, ac := range actors {
		out = append(out, toActor(ac))
	}
	writeJSONWithETag(c, http.StatusOK, out)
}

// @Summary  Create actor
// @Tags     catalog
// @Security Bearer
// @Param    req  body  CreateActorRequest  true  "payload"
// @Success  201  {object}  ActorResponse
// @Router   /api/v1/theatre/actors [post]
func (a *api) createActor(c *gin.Context) {
	var req CreateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	actor, err := a.svcs.Admin.CreateActor(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toActor(actor))
}

// @Summary  List theatre halls
// @Tags     catalog
// @Security Bearer
// @Success  200  {array}  HallResponse
// @Router   /api/v1/theatre/theatre_halls [get]
func (a *api) listHalls(c *gin.Context) {
	halls, err := a.svcs.Query.ListHalls(c.Request.Context())
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	out := make([]HallResponse, 0, len(halls))
	for _, h := range halls {
		out = append(out, toHall(h))
	}
	writeJSONWithETag(c, http.StatusOK, out)
}

// @Summary  Create theatre hall
// @Tags     catalog
// @Security Bearer
// @Param    req  body  CreateHallRequest  true  "payload"
// @Success  201  {object}  HallResponse
// @Failure  409  {object}  ErrorResponse  "name taken"
// @Router   /api/v1/theatre/theatre_halls [post]
func (a *api) createHall(c *gin.Context) {
	var req CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	h, err := a.svcs.Admin.CreateHall(c.Request.Context(), req.Name, req.Rows, req.SeatsInRow)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toHall(h))
}

// @Summary  List plays
// @Tags     catalog
// @Security Bearer
// @Param    title   query  string  false  "case-insensitive substring of the title"
// @Param    genres  query  string  false  "comma-separated genre ids, e.g. 1,3"
// @Param    actors  query  string  false  "comma-separated actor ids, e.g. 2,5"
// @Success  200  {array}  PlayListResponse
// @Router   /api/v1/theatre/plays [get]
func (a *api) listPlays(c *gin.Context) {
	f := domain.PlayFilter{Title: c.Query("title")}

	var err error
	if f.GenreIDs, err = parseIDList(c.Query("genres")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: map[string]string{"genres": "expected comma-separated ids"}})
		return
	}
	if f.ActorIDs, err = parseIDList(c.Query("actors")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: map[string]string{"actors": "expected comma-separated ids"}})
		return
	}

	plays, err := a.svcs.Query.ListPlays(c.Request.Context(), f)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	out := make([]PlayListResponse, 0, len(plays))
	for _, p := range plays {
		out = append(out, toPlayListItem(p))
	}
	writeJSONWithETag(c, http.StatusOK, out)
}

// @Summary  Create play
// @Tags     catalog
// @Security Bearer
// @Param    req  body  CreatePlayRequest  true  "payload"
// @Success  201  {object}  PlayResponse
// @Failure  404  {object}  ErrorResponse  "unknown genre or actor"
// @Router   /api/v1/theatre/plays [post]
func (a *api) createPlay(c *gin.Context) {
	var req CreatePlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	p, err := a.svcs.Admin.CreatePlay(c.Request.Context(), domain.Play{
		Title:       req.Title,
		Description: req.Description,
		GenreIDs:    req.Genres,
		ActorIDs:    req.Actors,
	})
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	c.JSON(http.StatusCreated, PlayResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Genres:      nonNilSlice(p.GenreIDs),
		Actors:      nonNilSlice(p.ActorIDs),
		Image:       p.Image,
	})
}

// @Summary  Get play
// @Tags     catalog
// @Security Bearer
// @Param    id  path  int  true  "Play ID"
// @Success  200  {object}  PlayDetailResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/theatre/plays/{id} [get]
func (a *api) getPlay(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	p, err := a.svcs.Query.GetPlay(c.Request.Context(), id)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	actors := make([]ActorResponse, 0, len(p.Actors))
	for _, ac := range p.Actors {
		actors = append(actors, toActor(ac))
	}

	writeJSONWithETag(c, http.StatusOK, PlayDetailResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Genres:      nonNilSlice(p.Genres),
		Actors:      actors,
		Image:       p.Image,
	})
}

// @Summary  Upload play image
// @Tags     catalog
// @Security Bearer
// @Accept   multipart/form-data
// @Param    id     path      int   true  "Play ID"
// @Param    image  formData  file  true  "image file"
// @Success  200  {object}  PlayImageResponse
// @Router   /api/v1/theatre/plays/{id}/upload-image [post]
func (a *api) uploadPlayImage(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: map[string]string{"image": "no file was submitted"}})
		return
	}

	if !imageExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: map[string]string{"image": "upload a valid image"}})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}
	defer f.Close()

	ref, err := a.svcs.Admin.UploadPlayImage(c.Request.Context(), id, fh.Filename, f)
	if err != nil {
		respondErr(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, PlayImageResponse{ID: id, Image: ref})
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
