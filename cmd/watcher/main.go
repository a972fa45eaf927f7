package main

import (
	"context"
	"log"

	"couponfinder/internal/env"
	"couponfinder/internal/keys"
	"couponfinder/internal/models"
	"couponfinder/internal/service"
	"couponfinder/internal/storage"
	"couponfinder/pkg/graceful"
	"couponfinder/pkg/kafkaclient"
)

// watcher tails the export bucket's notification topic and reports every
// archived finder run as it lands.
func main() {
	env.LoadEnv()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	broker := env.MustGetEnv("KAFKA_BROKER")
	topic := env.MustGetEnv("KAFKA_TOPIC")
	groupID := env.MustGetEnv("KAFKA_GROUP_ID")

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", broker, topic, groupID)

	consumer, err := kafkaclient.NewKafkaConsumer(topic, groupID, broker)
	if err != nil {
		log.Fatalf("Failed to create kafka consumer: %v", err)
	}

	s3Service, err := storage.NewS3Service(keys.Export)
	if err != nil {
		log.Fatal(err)
	}

	consumer.StartConsuming(ctx)
	iterator := service.NewIterator(consumer, func(ctx context.Context, bucket, key string) (*models.Export, error) {
		return s3Service.GetObject(ctx, bucket, key)
	})
	for obj := range iterator.Objects(ctx) {
		log.Printf("Archived export for %q: %d coupons at %s",
			obj.Data.Address, len(obj.Data.Coupons), obj.Data.StoreAddress)
	}

	consumer.Stop()
	log.Println("Watcher finished, application exiting.")
}
