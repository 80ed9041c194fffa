package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"order-assistant/internal/app/assistant"
	"order-assistant/internal/common/config"
	"order-assistant/internal/common/db"
	"order-assistant/internal/common/logger"
	"order-assistant/internal/dialogue"
	"order-assistant/internal/ledger"
	"order-assistant/internal/notify"
	"order-assistant/internal/responder"
	"order-assistant/internal/session"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (default: search usual locations)")
	port := flag.Int("port", 0, "http port (overrides config)")
	flag.Parse()

	lg := logger.New("order-assistant")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config.LoadDotEnv(".env")

	path := *cfgPath
	if path == "" {
		var err error
		if path, err = config.FindConfig(); err != nil {
			lg.Error("fatal", err, map[string]any{"reason": "no config file found"})
			os.Exit(1)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	var storeOpts []session.StoreOption
	if cfg.Sessions.Driver == string(session.StoreTypeRedis) {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Sessions.Redis.Addr,
			Password: cfg.Sessions.Redis.Password,
			DB:       cfg.Sessions.Redis.DB,
		})
		storeOpts = append(storeOpts,
			session.WithRedisClient(client),
			session.WithRedisTTL(time.Duration(cfg.Sessions.Redis.TTLHours)*time.Hour),
		)
	}
	sessions, err := session.NewStore(session.StoreType(cfg.Sessions.Driver), storeOpts...)
	if err != nil {
		lg.Error("fatal", err, map[string]any{"driver": cfg.Sessions.Driver})
		os.Exit(1)
	}
	defer sessions.Close()

	var ledgerOpts []ledger.Option
	if cfg.Ledger.Driver == string(ledger.DriverPostgres) {
		pg := cfg.Ledger.Postgres
		conn, err := db.Connect(ctx, pg.Host, pg.Port, pg.User, pg.Pass, pg.Name)
		if err != nil {
			lg.Error("fatal", err, map[string]any{"driver": cfg.Ledger.Driver})
			os.Exit(1)
		}
		ledgerOpts = append(ledgerOpts, ledger.WithConn(conn))
	} else {
		ledgerOpts = append(ledgerOpts, ledger.WithPath(cfg.Ledger.Path))
	}
	led, err := ledger.New(ctx, ledger.Driver(cfg.Ledger.Driver), ledgerOpts...)
	if err != nil {
		lg.Error("fatal", err, map[string]any{"driver": cfg.Ledger.Driver})
		os.Exit(1)
	}
	defer led.Close()

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Rabbit.Enabled {
		n, err := notify.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
		if err != nil {
			lg.Error("fatal", err, map[string]any{"host": cfg.Rabbit.Host})
			os.Exit(1)
		}
		notifier = n
	}
	defer notifier.Close()

	resp := responder.NewOpenAIResponder(
		cfg.Responder.BaseURL,
		cfg.Responder.Model,
		os.Getenv(cfg.Responder.APIKeyEnv),
		cfg.Restaurant.FAQ,
		time.Duration(cfg.Responder.TimeoutSec)*time.Second,
	)

	engine := dialogue.NewEngine(sessions, led, resp, notifier, cfg.Restaurant.Hours, cfg.Restaurant.Name, logger.New("dialogue"))
	handler := assistant.NewHandler(engine, led, logger.New("http"))

	lg.Info("service_started", map[string]any{
		"port":           cfg.HTTP.Port,
		"session_driver": cfg.Sessions.Driver,
		"ledger_driver":  cfg.Ledger.Driver,
	})
	if err := assistant.Run(ctx, cfg.HTTP.Port, handler); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
	lg.Info("service_stopped", nil)
}
