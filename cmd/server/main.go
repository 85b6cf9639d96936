package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prajithkb/connect4js/internal/analytics"
	"github.com/prajithkb/connect4js/internal/config"
	"github.com/prajithkb/connect4js/internal/server"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var producer *analytics.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	}

	srv := server.New(server.Config{
		Rows:         cfg.Rows,
		Cols:         cfg.Cols,
		Level:        cfg.Level,
		MoveDelay:    cfg.MoveDelay,
		RestartDelay: cfg.RestartDelay,
		Analytics:    producer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Run(ctx)

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Handler()}
	go func() {
		log.Printf("server listening on %s (%dx%d board, level %d)", cfg.Addr, cfg.Rows, cfg.Cols, cfg.Level)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
