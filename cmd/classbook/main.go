package main

import (
	"context"
	"log"
	"net/http"

	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/classbook/classbook-backend/internal/api"
	classes_service "github.com/classbook/classbook-backend/internal/business/classes"
	"github.com/classbook/classbook-backend/internal/config"
	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/database/exception"
	"github.com/classbook/classbook-backend/internal/database/series"
	"github.com/classbook/classbook-backend/internal/database/user"
	"github.com/classbook/classbook-backend/internal/notifications"
	"github.com/classbook/classbook-backend/internal/pkg/fcm"
	"github.com/classbook/classbook-backend/internal/redis"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	redisPool := redis.NewRedisPool(logger)
	reminderMarks := redis.NewReminderMarkRepository(redisPool, config.ReminderMarkTTL())

	db, err := database.NewPGX(ctx)
	if err != nil {
		log.Fatalf("unable to initializae db: %v", err)
	}
	seriesRepository := series.NewRepository()
	exceptionsRepository := exception.NewRepository()
	usersRepository := user.NewRepository()

	classesService := classes_service.NewService(db, seriesRepository, exceptionsRepository)

	fcmService, err := fcm.NewService(ctx)
	if err != nil {
		log.Fatalf("unable to initializae fcm service: %v", err)
	}
	notifier := notifications.NewPushNotifier(fcmService)

	sender := notifications.NewSender(
		db,
		logger,
		seriesRepository,
		exceptionsRepository,
		usersRepository,
		reminderMarks,
		notifier,
		config.ReminderTickPeriod(),
		config.ReminderTickBudget(),
		config.Location(),
	)
	go sender.Start(ctx)

	api, err := api.NewApi(logger, classesService, sender)
	if err != nil {
		log.Fatalf("unable to initializae api: %v", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
