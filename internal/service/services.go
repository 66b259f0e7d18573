package service

import (
	postgres "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	redis "github.com/kirinyoku/theatre-go/internal/repository/redis"
	"github.com/kirinyoku/theatre-go/internal/service/admin"
	"github.com/kirinyoku/theatre-go/internal/service/query"
	"github.com/kirinyoku/theatre-go/internal/service/reservation"
	"github.com/kirinyoku/theatre-go/internal/storage"
)

type Services struct {
	Reservation *reservation.Service
	Query       *query.Service
	Admin       *admin.Service
}

type Config struct {
	Reservation reservation.Config
}

func NewServices(
	store *postgres.Store,
	images storage.ImageStore,
	pubsub *redis.PerformancesPubSub,
	limiter *redis.ReservationLimiter,
	cfg Config,
) *Services {
	return &Services{
		Reservation: reservation.New(store, pubsub, limiter, cfg.Reservation),
		Query:       query.New(store),
		Admin:       admin.New(store, images, pubsub),
	}
}
