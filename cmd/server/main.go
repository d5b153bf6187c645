package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/newsroom"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := newsroom.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:newsroom.db?cache=shared&_pragma=foreign_keys(1)"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := newsroom.CreateSchema(ctx, db); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	repo := newsroom.NewRepositoryManager(db)
	repo.MustValidate()

	provider := newsroom.NewUserProvider(repo.Users())
	auther := newsroom.NewAuthenticator(provider, repo.Users(), cfg)

	httpAuth, err := newsroom.NewHTTPAuthenticator(auther, cfg)
	if err != nil {
		log.Fatalf("http authenticator: %v", err)
	}

	subs := newsroom.NewSubscriptionService(repo)
	themes := newsroom.NewThemeService(repo)
	feed := newsroom.NewFeedService(repo, subs)
	comments := newsroom.NewCommentService(repo)

	controller := newsroom.NewHTTPController(
		newsroom.WithControllerRepo(repo),
		newsroom.WithControllerAuther(auther),
		newsroom.WithControllerServices(feed, comments, subs, themes),
		newsroom.WithControllerContextKey(cfg.GetContextKey()),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: newsroom.DefaultErrorHandler(nil),
	})

	protected := httpAuth.ProtectedRoute(httpAuth.MakeAuthErrorHandler(false))
	optional := httpAuth.ProtectedRoute(httpAuth.MakeAuthErrorHandler(true))

	controller.RegisterRoutes(app, protected, optional)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	if err := app.Listen(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
