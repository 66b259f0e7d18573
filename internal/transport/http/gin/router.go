package httpgin

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	redisrepo "github.com/kirinyoku/theatre-go/internal/repository/redis"
	"github.com/kirinyoku/theatre-go/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	// MediaRoot and MediaURL serve locally stored images; empty disables it.
	MediaRoot string
	MediaURL  string
}

type api struct {
	svcs   *service.Services
	idem   *redisrepo.IdempotencyStore
	logger *slog.Logger
}

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	tokens TokenParser,
	logger *slog.Logger,
	opts Options,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.MediaRoot != "" && opts.MediaURL != "" {
		r.Static(opts.MediaURL, opts.MediaRoot)
	}

	a := &api{svcs: svcs, idem: idem, logger: logger}

	theatre := r.Group("/api/v1/theatre", Authenticate(tokens))
	{
		catalog := theatre.Group("", StaffForWrites())

		catalog.GET("/genres", a.listGenres)
		catalog.POST("/genres", a.createGenre)
		catalog.GET("/actors", a.listActors)
		catalog.POST("/actors", a.createActor)
		catalog.GET("/theatre_halls", a.listHalls)
		catalog.POST("/theatre_halls", a.createHall)

		catalog.GET("/plays", a.listPlays)
		catalog.POST("/plays", a.createPlay)
		catalog.GET("/plays/:id", a.getPlay)
		catalog.POST("/plays/:id/upload-image", a.uploadPlayImage)

		catalog.GET("/performances", a.listPerformances)
		catalog.POST("/performances", a.createPerformance)
		catalog.GET("/performances/:id", a.getPerformance)
		catalog.PUT("/performances/:id", a.updatePerformance)
		catalog.DELETE("/performances/:id", a.deletePerformance)

		// any authenticated user books seats for themselves
		theatre.POST("/reservations", a.createReservation)
		theatre.GET("/reservations", a.listReservations)
	}

	return r
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// parseIDList reads a comma-separated list of ids such as "1,3".
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}

	return out, nil
}
