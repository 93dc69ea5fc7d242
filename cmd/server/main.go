package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/coursehub/backend/internal/config"
	"github.com/coursehub/backend/internal/db"
	"github.com/coursehub/backend/internal/events"
	"github.com/coursehub/backend/internal/httpserver"
	"github.com/coursehub/backend/internal/logging"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/repo"
	"github.com/coursehub/backend/internal/search"
	"github.com/coursehub/backend/internal/seed"
	"github.com/coursehub/backend/internal/service"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	if cfg.SeedDevData {
		seedCtx := logging.IntoContext(context.Background(), logger)
		if err := seed.DevData(seedCtx, gdb); err != nil {
			log.Fatalf("seed error: %v", err)
		}
	}

	esClient, err := search.NewClient(search.ClientConfig{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
	})
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	courseIndex := search.NewCourseIndex(esClient, cfg.ESIndex)

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
	defer producer.Close()

	store := &repo.GormRepo{DB: gdb}

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:      store,
				JWTSecret: cfg.JWTSecret,
				TokenTTL:  cfg.TokenTTL,
				Events:    producer,
			},
		},
		UserHandler: &httpserver.UserHTTP{},
		CourseHandler: &httpserver.CourseHTTP{
			Svc: &service.CourseService{
				Repo:   store,
				Index:  courseIndex,
				Events: producer,
			},
		},
		EnrollmentHandler: &httpserver.EnrollmentHTTP{
			Svc: &service.EnrollmentService{
				Repo:   store,
				Events: producer,
			},
		},
		Guard: middleware.NewRoleGuard(cfg.JWTSecret, store),
	}
	httpserver.Register(e, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
