package main

import (
	"flag"
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/regulaworks/vendorcomply/internal/config"
	"github.com/regulaworks/vendorcomply/internal/domain"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/providers"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/repository"
	"github.com/regulaworks/vendorcomply/internal/present/rest"
	"github.com/regulaworks/vendorcomply/internal/present/rest/middleware"
	"github.com/regulaworks/vendorcomply/internal/service"
	"github.com/regulaworks/vendorcomply/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := providers.MigrateDatabase(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	rdb := providers.NewRedis(conf.Server)

	registry := domain.NewRegistry()
	submissionRepo := repository.NewSubmissionRepository(db)
	reconciler := repository.NewLegacyReconciler(db)
	notify := service.NewNotifyService(rdb)

	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, reconciler, registry, notify)
	documentUC := usecase.NewDocumentUsecase(submissionRepo, reconciler, registry, notify)
	resubmissionUC := usecase.NewResubmissionUsecase(submissionRepo, reconciler, notify)

	handler := rest.NewHandler(conf.Portal, submissionUC, documentUC, resubmissionUC, notify)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.NewActorMiddleware().IdentifyActor)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}
