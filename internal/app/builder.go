package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/equip-catalog/internal/auth/token"
	"github.com/EgorLis/equip-catalog/internal/catalog"
	"github.com/EgorLis/equip-catalog/internal/config"
	"github.com/EgorLis/equip-catalog/internal/domain"
	redisx "github.com/EgorLis/equip-catalog/internal/infra/cache/redis"
	"github.com/EgorLis/equip-catalog/internal/infra/database/postgres"
	"github.com/EgorLis/equip-catalog/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  domain.Cache
	repo   domain.EquipmentRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	catalogLog := log.New(base.Writer(), base.Prefix()+"[catalog] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	// Кеш best-effort: неудачный пинг логируем, но старт не блокируем —
	// листинги уйдут напрямую в БД.
	if err := rc.Ping(ctx); err != nil {
		base.Printf("Redis is unreachable, starting degraded: %v", err)
	} else {
		base.Println("Redis is initialized")
	}

	// Auth primitives
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)

	base.Println("init catalog service")
	svc := catalog.New(catalogLog, pgRepo, rc)

	base.Println("init Server")
	auth := web.AuthDeps{Tokens: tm}
	server := web.New(serverLog, cfg, svc, auth, pgRepo, rc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
