package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"docuchat-be/pkg/events"
	pktNats "docuchat-be/pkg/nats"
)

// eventwatch tails the domain event bus. Handy for watching embedding and
// summary progress without grepping server logs.
func main() {
	subject := flag.String("subject", "docuchat.>", "subject pattern to watch")
	durable := flag.String("durable", "eventwatch", "durable consumer name")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		url = "nats://localhost:4222"
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(*subject, *durable, func(_ context.Context, event events.Event) error {
		data, err := json.Marshal(event.Payload())
		if err != nil {
			return err
		}

		ts := event.Timestamp().Format("15:04:05")
		switch event.EventType() {
		case events.TypeDocumentStatusChanged:
			color.Yellow("%s %s %s", ts, event.EventType(), data)
		case events.TypeSummaryCompleted:
			color.Cyan("%s %s %s", ts, event.EventType(), data)
		default:
			color.Green("%s %s %s", ts, event.EventType(), data)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
