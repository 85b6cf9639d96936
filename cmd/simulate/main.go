package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prajithkb/connect4js/internal/analytics"
	"github.com/prajithkb/connect4js/internal/config"
	"github.com/prajithkb/connect4js/internal/game"
	"github.com/prajithkb/connect4js/internal/render"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	rows := flag.Int("rows", cfg.Rows, "board rows")
	cols := flag.Int("cols", cfg.Cols, "board columns")
	level := flag.Int("level", cfg.Level, "play level, 8 and above never plays random moves")
	delay := flag.Duration("delay", cfg.MoveDelay, "pause between moves")
	logFile := flag.String("log", cfg.LogFile, "diagnostics log file, truncated at startup")
	flag.Parse()

	cfg.Rows, cfg.Cols = *rows, *cols
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	f, err := os.Create(*logFile)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer f.Close()
	diag := log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	log.SetOutput(f)

	var producer *analytics.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	}

	ctx := context.Background()
	match := game.NewMatch(game.MatchConfig{
		Rows:   cfg.Rows,
		Cols:   cfg.Cols,
		Level:  *level,
		Logger: diag,
	}, func(s game.Snapshot) { producer.GameFinished(ctx, s) })

	fmt.Printf("Welcome to the simulation of Connect 4! Players: %s[%s] & %s[%s]\n",
		game.P1, game.P1.Piece(), game.P2, game.P2.Piece())
	diag.Printf("starting game %s", match.ID())

	for {
		res, err := match.Step()
		if err != nil {
			diag.Printf("no move possible: %v", err)
			fmt.Println("Game over, no moves left")
			return
		}
		producer.MovePlayed(ctx, match.ID(), res)
		time.Sleep(*delay)

		fmt.Printf("\nPlayer: %s made the move (column %d), %s thinking...\n", res.Player, res.Column, res.Player.Other())
		render.Board(os.Stdout, match.Snapshot().BoardCopy(), res.Winning)

		switch res.Status.Kind {
		case game.Won:
			fmt.Printf("Game over, %s won! Winning cells: %v\n", res.Status.Winner, res.Winning)
			return
		case game.Tie:
			fmt.Println("Game over, it is a tie")
			return
		}
	}
}
