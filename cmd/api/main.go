package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/bekzatm/tezdeliver/internal/auth"
	"github.com/bekzatm/tezdeliver/internal/cart"
	"github.com/bekzatm/tezdeliver/internal/chat"
	"github.com/bekzatm/tezdeliver/internal/config"
	"github.com/bekzatm/tezdeliver/internal/db"
	"github.com/bekzatm/tezdeliver/internal/httpx"
	"github.com/bekzatm/tezdeliver/internal/media"
	"github.com/bekzatm/tezdeliver/internal/order"
	"github.com/bekzatm/tezdeliver/internal/store"
	"github.com/bekzatm/tezdeliver/internal/user"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.Load()

	if err := db.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	pool, err := db.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	storage, err := media.New(cfg.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("media dir unavailable")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	users := user.NewPGRepo(pool)
	authSvc := auth.NewService(users, tokens, auth.NewRedisBlacklist(rdb))

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerRoutes(r, deps{
		authSvc: authSvc,
		tokens:  tokens,
		users:   users,
		stores:  store.NewPGRepo(pool),
		carts:   cart.NewPGRepo(pool),
		orders:  order.NewPGRepo(pool),
		chats:   chat.NewPGRepo(pool),
		media:   storage,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("api listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
