package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"UserAPI/internal/config"
	"UserAPI/internal/logger"
	"UserAPI/internal/metrics"
	"UserAPI/internal/middleware"
	"UserAPI/internal/repo"
	"UserAPI/migrations"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    *logger.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
	users  repo.UserRepo
	router *gin.Engine
}

// New connects the configured storage driver and builds the router.
// Postgres migrations run before the first request is served.
func New(cfg config.Config, log *logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if err := migrations.Up(cfg.PG.DSN); err != nil {
			return nil, err
		}
		db, err := newPostgres(cfg.PG.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.users = repo.NewPGUserRepo(db)
	case config.StorageRedis:
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		a.users = repo.NewRedisUserRepo(rdb, cfg.Redis.KeyPrefix)
	case config.StorageMemory:
		a.users = repo.NewMemoryUserRepo()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	log.Infof("storage driver %s ready", cfg.Storage.Driver)

	a.router = newRouter(cfg, log, a.users)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases the storage connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	return errors.Join(errs...)
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, log *logger.Logger, users repo.UserRepo) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	m := metrics.NewHTTP()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		gin.Recovery(),
		m.Middleware(),
	)
	// /hello answers every method itself, preflights included
	r.Use(skipPaths(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Location", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}), helloPath))

	Setup(r, cfg, users, log, m)
	return r
}

// skipPaths runs h on every route except the given ones.
func skipPaths(h gin.HandlerFunc, paths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		skip[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}
		h(c)
	}
}
