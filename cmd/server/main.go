package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"

	"couponfinder/internal/env"
	"couponfinder/internal/models"
	"couponfinder/internal/server"
	"couponfinder/internal/server/middleware"
	"couponfinder/pkg/dominos"
)

func main() {
	env.LoadEnv()

	providerKind := env.GetEnv("FINDER_PROVIDER", "direct")
	city := env.GetEnv("FINDER_CITY", models.DefaultCity)

	handler := server.NewCouponHandler(func() dominos.StoreAndCouponProvider {
		return dominos.NewProvider(providerKind)
	}, city)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", server.NewRouter(handler))

	srv := &http.Server{
		Addr:         env.GetEnv("SERVER_ADDR", ":8080"),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // a search drives a full scrape
		IdleTimeout:  60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("starting coupon finder on %s (provider: %s)", srv.Addr, providerKind)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}

	<-idleConnsClosed
	log.Println("server stopped")
}
