package main

import (
	"flag"
	"net/http"

	"foodhub/config"
	"foodhub/internal/logging"
	"foodhub/internal/metrics"
	"foodhub/internal/mockapi"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", cfg.MockAPIAddr, "listen address")
	withMetrics := flag.Bool("metrics", true, "serve /metrics")
	flag.Parse()

	log := logging.New("mockapi")

	var publisher mockapi.Publisher
	if cfg.KafkaBroker != "" {
		writer := cfg.NewKafkaWriter()
		defer writer.Close()
		publisher = mockapi.NewKafkaPublisher(writer)
		log.WithField("topic", cfg.PushTopic).Info("publishing push messages to Kafka")
	}

	var metricsHandler http.Handler
	if *withMetrics {
		metricsHandler = metrics.Handler()
	}

	handler := mockapi.NewHandler(mockapi.NewStore(), publisher, metricsHandler)
	if err := mockapi.StartServer(*addr, mockapi.NewRouter(handler)); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
