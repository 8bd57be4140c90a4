// Command eventlog tails the directory event topic and logs every company
// and counters mutation, so operators can watch what the dashboard does.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/companydesk/directory/internal/directory/config"
	"github.com/companydesk/directory/internal/directory/events"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.Topic, logger)
	defer consumer.Close()

	consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
		fields := []zap.Field{zap.String("event_type", string(event.Type))}
		if event.Company != nil {
			fields = append(fields,
				zap.Uint("company_id", event.Company.ID),
				zap.String("name", event.Company.Name),
			)
		}
		if event.Counters != nil {
			fields = append(fields,
				zap.Int("partners", event.Counters.Partners),
				zap.Int("booking", event.Counters.Booking),
			)
		}
		logger.Info("directory event", fields...)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
