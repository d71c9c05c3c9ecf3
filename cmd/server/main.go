package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/domsolaire/solar-crm/internal/config"
	"github.com/domsolaire/solar-crm/internal/database"
	"github.com/domsolaire/solar-crm/internal/geocode"
	"github.com/domsolaire/solar-crm/internal/handler"
	"github.com/domsolaire/solar-crm/internal/mailer"
	appmw "github.com/domsolaire/solar-crm/internal/middleware"
	"github.com/domsolaire/solar-crm/internal/queue"
	"github.com/domsolaire/solar-crm/internal/repository"
	"github.com/domsolaire/solar-crm/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: with no client the limiter and cache become
	// passthroughs.
	rdb := config.NewRedisClient()
	limiter := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := appmw.NewResponseCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	projects := repository.NewProjectRepo(db)
	steps := repository.NewStepRepo(db)
	fields := repository.NewCustomFieldRepo(db)
	investors := repository.NewInvestorRepo(db)
	milestones := repository.NewMilestoneRepo(db)
	invitations := repository.NewInvitationRepo(db)

	// The consumer reconnects on its own; losing the broker only delays
	// invitation emails.
	m := mailer.New(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
	go func() {
		if err := queue.StartInvitationConsumer(m); err != nil {
			log.Printf("invitation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	pub := handler.NewPublicHandler(invitations, steps, fields)
	router.RegisterRoutes(e, pub, cache)
	router.RegisterUsers(e, handler.NewUserHandler(cfg, users), cfg.JWTSecret, limiter)
	router.RegisterProjects(e,
		handler.NewProjectHandler(projects, geocode.New()),
		handler.NewStepHandler(steps),
		handler.NewCustomFieldHandler(fields),
		handler.NewInviteHandler(projects, invitations, cfg.PublicBaseURL),
		cfg.JWTSecret)
	mh := handler.NewMilestoneHandler(milestones)
	router.RegisterInvestors(e, handler.NewInvestorHandler(investors), mh, cfg.JWTSecret)
	router.RegisterMilestones(e, mh, cfg.JWTSecret, cache)
	router.RegisterDashboard(e, handler.NewDashboardHandler(projects), cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
