package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openshelf/library-service/config"
	"github.com/openshelf/library-service/internal/handler"
	"github.com/openshelf/library-service/internal/repository"
	"github.com/openshelf/library-service/internal/server"
	"github.com/openshelf/library-service/internal/service"
	"github.com/openshelf/library-service/migrations"
	"github.com/openshelf/library-service/pkg/auth"
	"github.com/openshelf/library-service/pkg/kafka"
	"github.com/openshelf/library-service/pkg/logger"
	"github.com/openshelf/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	auth.SetKey(cfg.Auth.Secret)

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	svc := service.NewService(repo, cfg.Auth, log)

	var events handler.LoanEvents
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		// audit pipeline is optional, the service runs without it
		log.Warn("kafka.NewProducer", zap.Error(err))
	} else {
		events = handler.NewLoanEvents(producer, kafka.LoanTopic)
	}

	consumeCtx, stopConsume := context.WithCancel(context.Background())
	defer stopConsume()
	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.LoanConsumerGroup)
	if err != nil {
		log.Warn("kafka.NewConsumer", zap.Error(err))
	} else {
		go kafka.Consume(consumeCtx, consumer, handler.NewConsumer(svc.RecordLoanEvent, log), kafka.LoanTopic, log)
	}

	h := handler.New(svc, svc, svc, svc, events, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	stopConsume()
	if producer != nil {
		_ = producer.Close()
	}
	if err := db.Close(); err != nil {
		log.Error("db.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
