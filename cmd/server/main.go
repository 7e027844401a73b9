package main

import (
	"strconv"
	"strings"

	adminhandler "parq/internal/admin/handler"
	"parq/internal/notify"
	"parq/internal/parking/handler"
	"parq/internal/parking/service"
	"parq/internal/parking/store"
	"parq/internal/parking/validator"
	"parq/pkg/app"
	"parq/pkg/config"
	"parq/pkg/events"
)

func main() {
	cfg := config.Load("parq")
	log := cfg.Log

	st := store.New(cfg.PricePerHour)
	if cfg.SeedDemoData {
		seed(st, cfg)
	}

	dispatcher := notify.NewDispatcher(cfg.NotifyBuffer, cfg.NotifyTimeout, log)
	defer dispatcher.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer kp.Close()
		publisher = kp
		log.Info("Kafka event publisher enabled",
			"brokers", strings.Join(cfg.KafkaBrokers, ","),
			"topic", cfg.KafkaTopic,
		)
	}

	svc := service.NewParkingService(st, validator.NewParkingValidator(cfg.MaxReservationHours), dispatcher, publisher, cfg)

	application := app.NewApplication(cfg)
	application.SetHealth(handler.NewHealthHandler(log))
	application.SetApp(
		handler.NewReservationHandler(svc, log),
		adminhandler.NewAdminHandler(svc, log),
	)
	application.SetStream("/api/v1/notifications/ws", notify.NewWebSocketHandler(dispatcher, log))

	application.Run()
}

// seed fills the lot with the demo layout: two zones, a handful of
// spots each, labelled by the zone's first two letters plus an index
// (DO1..DO4, MA1..MA4).
func seed(st store.Store, cfg *config.Config) {
	zones := []struct {
		name        string
		description string
	}{
		{"Downtown", "City centre zone"},
		{"Mall", "Shopping mall"},
	}

	for _, z := range zones {
		if err := st.AddZone(z.name, z.description); err != nil {
			cfg.Log.Fatal("Failed to seed zone", "zone", z.name, "error", err)
		}
		prefix := strings.ToUpper(z.name[:2])
		for i := 1; i <= cfg.SpotsPerZone; i++ {
			label := prefix + strconv.Itoa(i)
			if _, err := st.AddSpot(label, z.name); err != nil {
				cfg.Log.Fatal("Failed to seed spot", "label", label, "error", err)
			}
		}
	}

	cfg.Log.Info("Demo data seeded",
		"zones", len(zones),
		"spots", len(zones)*cfg.SpotsPerZone,
	)
}
