package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"couponfinder/internal/env"
	"couponfinder/internal/finder"
	"couponfinder/internal/keys"
	"couponfinder/internal/models"
	"couponfinder/internal/report"
	"couponfinder/internal/storage"
	"couponfinder/pkg/dominos"
	"couponfinder/pkg/graceful"
	"couponfinder/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()

	address := flag.String("address", "1215 Rue Bishop", "part of the store address to search for")
	flag.Parse()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	start := time.Now()

	provider := dominos.NewProvider(env.GetEnv("FINDER_PROVIDER", "direct"))
	defer provider.Close()

	f := finder.New(provider, func(stage finder.Stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})

	req := models.SearchRequest{
		City:    env.GetEnv("FINDER_CITY", models.DefaultCity),
		Address: *address,
		Service: models.ServiceCarryout,
	}
	result, err := f.Run(ctx, req)
	if err != nil {
		log.Printf("Search finished without results: %v", err)
	}

	report.Render(os.Stdout, result.Coupons)

	if len(result.Coupons) > 0 {
		name := report.Filename(time.Now())
		data, err := report.CSV(result.Coupons)
		if err != nil {
			log.Fatalf("Failed to encode CSV: %v", err)
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
		fmt.Printf("Wrote %d coupons to %s\n", len(result.Coupons), name)

		archive(ctx, req, result)
	}

	fmt.Printf("\nFinished search, took %s\n", time.Since(start))
}

// archive pushes the run to the optional export sinks when they are
// configured. Sink failures are logged, never fatal; the pipeline result has
// already been reported.
func archive(ctx context.Context, req models.SearchRequest, result finder.Result) {
	export := models.Export{
		Address:      req.Address,
		StoreAddress: result.Store.Address(),
		CreatedAt:    time.Now().UTC(),
		Coupons:      result.Coupons,
	}

	if bucket := os.Getenv("FINDER_BUCKET_NAME"); bucket != "" {
		s3Service, err := storage.NewS3Service(keys.Export)
		if err != nil {
			log.Printf("Skipping S3 archive: %v", err)
		} else if _, err := s3Service.CreateBucket(ctx, bucket, ""); err != nil {
			log.Printf("Skipping S3 archive: %v", err)
		} else if err := s3Service.StoreExport(ctx, bucket, export); err != nil {
			log.Printf("Failed to archive export: %v", err)
		}
	}

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		topic := env.MustGetEnv("KAFKA_EXPORT_TOPIC")
		producer := kafkaclient.NewProducer(broker, topic)
		defer producer.Close()
		if err := producer.Publish(ctx, result.Store.ID, export); err != nil {
			log.Printf("Failed to publish export event: %v", err)
		}
	}
}
