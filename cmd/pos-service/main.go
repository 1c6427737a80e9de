// Command pos-service runs the restaurant point-of-sale API.
//
//	@title			Restaurant POS API
//	@version		1.0
//	@description	Menu, tables, carts, orders, tickets and reports of a restaurant POS.
//	@BasePath		/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/restaurant-pos/internal/auth"
	"github.com/MikeMC777/restaurant-pos/internal/cart"
	"github.com/MikeMC777/restaurant-pos/internal/config"
	"github.com/MikeMC777/restaurant-pos/internal/db"
	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/memstore"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/pos"
	"github.com/MikeMC777/restaurant-pos/internal/report"
	"github.com/MikeMC777/restaurant-pos/internal/table"
	"github.com/MikeMC777/restaurant-pos/internal/ticket"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

// repos groups one backend's repositories.
type repos struct {
	menu   menu.Repository
	tables table.Repository
	orders order.Repository
	users  user.Repository
}

func main() {
	cfg := config.Load()
	log, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	cfg.Log(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rs, closeStore, err := openRepos(ctx, cfg, log)
	if err != nil {
		log.Fatal("store", zap.Error(err))
	}
	defer closeStore()

	printer, closePrinter := openPrinter(cfg, log)
	defer closePrinter()

	a := newApp(rs, printer, cfg, log)
	srv := httpx.NewServer(cfg.HTTPAddr, newRouter(a))
	health := httpx.NewHealth(cfg.GRPCAddr, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("pos-service listening", zap.String("addr", cfg.HTTPAddr))
		return srv.Run(gctx)
	})
	g.Go(func() error { return health.Run(gctx) })
	if err := g.Wait(); err != nil {
		log.Fatal("server", zap.Error(err))
	}
	log.Info("pos-service stopped")
}

func openRepos(ctx context.Context, cfg config.Config, log *zap.Logger) (repos, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Warn("POSTGRES_DSN not set, using in-memory store")
		ms := memstore.New()
		return repos{menu: ms.Menu(), tables: ms.Tables(), orders: ms.Orders(), users: ms.Users()}, func() {}, nil
	}
	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return repos{}, nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return repos{}, nil, err
	}
	return repos{
		menu:   menu.NewPGRepo(pool),
		tables: table.NewPGRepo(pool),
		orders: order.NewPGRepo(pool),
		users:  user.NewPGRepo(pool),
	}, pool.Close, nil
}

func openPrinter(cfg config.Config, log *zap.Logger) (ticket.Dispatcher, func()) {
	if cfg.AMQPURL == "" {
		return ticket.NewLogDispatcher(log), func() {}
	}
	d, err := ticket.DialAMQP(cfg.AMQPURL, log)
	if err != nil {
		// tickets are best effort; orders keep working without a broker
		log.Error("amqp unavailable, printing to log", zap.Error(err))
		return ticket.NewLogDispatcher(log), func() {}
	}
	return d, d.Close
}

// app holds the services shared by the handlers.
type app struct {
	users   *user.Service
	tokens  *auth.Tokens
	menu    *menu.Service
	tables  *table.Service
	carts   *cart.Service
	pos     *pos.Service
	reports *report.Service
	printer ticket.Dispatcher
	origins []string
	log     *zap.Logger
}

func newApp(rs repos, printer ticket.Dispatcher, cfg config.Config, log *zap.Logger) *app {
	header := ticket.Header{
		Name:     cfg.RestaurantName,
		Address1: cfg.RestaurantAddress1,
		Address2: cfg.RestaurantAddress2,
		Phone:    cfg.RestaurantPhone,
		Location: cfg.Location(),
	}
	posSvc := pos.NewService(rs.orders, rs.tables, rs.menu, printer, header, log)
	return &app{
		users:   user.NewService(rs.users, cfg.AdminEmail, log),
		tokens:  auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		menu:    menu.NewService(rs.menu, log),
		tables:  table.NewService(rs.tables, rs.orders, log),
		carts:   cart.NewService(cart.NewStore(), rs.menu, log),
		pos:     posSvc,
		reports: report.NewService(rs.orders, rs.tables, posSvc, cfg.Location(), log),
		printer: printer,
		origins: cfg.CORSOrigins,
		log:     log,
	}
}
