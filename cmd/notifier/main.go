package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-CarWashBooking/internal/config"
	"github.com/m04kA/SMC-CarWashBooking/internal/notifications"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
	"github.com/m04kA/SMC-CarWashBooking/pkg/metrics"
	"github.com/m04kA/SMC-CarWashBooking/pkg/mq"
)

const consumerTag = "carwash-notifier"

// Читает события бронирований из RabbitMQ и рассылает e-mail и WhatsApp.
// Используется при notifications.transport = "rabbitmq".
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	metricsAddr := flag.String("metrics-addr", ":9091", "listen address for /metrics")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CarWashBooking notifier...")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName + "-notifier")

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		go func() {
			log.Info("Metrics endpoint exposed at %s%s", *metricsAddr, cfg.Metrics.Path)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server failed: %v", err)
			}
		}()
	}

	senders, err := notifications.NewSenders(cfg.NotificationChannels())
	if err != nil {
		log.Fatal("Failed to initialize notification senders: %v", err)
	}
	if len(senders) == 0 {
		log.Warn("No notification channels enabled, events will be acknowledged without delivery")
	}

	rabbit := cfg.Notifications.RabbitMQ
	consumer, err := mq.NewConsumer(rabbit.URL, rabbit.Exchange, rabbit.Queue,
		[]string{notifications.RKBookingCreated, notifications.RKBookingCanceled}, rabbit.Prefetch)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ: %v", err)
	}
	defer consumer.Close()
	log.Info("Consuming queue %s bound to exchange %s", rabbit.Queue, rabbit.Exchange)

	worker := notifications.NewWorker(consumer, senders,
		time.Duration(cfg.Notifications.SendTimeout)*time.Second, metricsCollector, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx, consumerTag); err != nil {
		log.Error("Notifier stopped with error: %v", err)
		return
	}

	log.Info("Notifier stopped gracefully")
}
