package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/prajithkb/connect4js/internal/game"
)

const (
	EventMovePlayed   = "move_played"
	EventGameFinished = "game_finished"
)

// Event is the envelope written to the topic.
type Event struct {
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// Producer publishes match events. A nil Producer drops everything.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, event, key string, payload map[string]any) {
	if p == nil || p.writer == nil {
		return
	}
	data, err := json.Marshal(Event{Event: event, Payload: payload, Timestamp: time.Now().UTC()})
	if err != nil {
		log.Printf("kafka encode failed: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data}); err != nil {
		log.Printf("kafka publish failed: %v", err)
	}
}

// MovePlayed reports one committed move of a match.
func (p *Producer) MovePlayed(ctx context.Context, gameID string, res game.MoveResult) {
	p.Publish(ctx, EventMovePlayed, gameID, MovePayload(gameID, res))
}

// GameFinished reports the final state of a match.
func (p *Producer) GameFinished(ctx context.Context, snap game.Snapshot) {
	p.Publish(ctx, EventGameFinished, snap.ID, FinishPayload(snap))
}

func MovePayload(gameID string, res game.MoveResult) map[string]any {
	return map[string]any{
		"gameId":  gameID,
		"player":  res.Player.String(),
		"column":  res.Column,
		"row":     res.Row,
		"status":  res.Status.String(),
		"winning": res.Winning,
		"nodes":   res.Nodes,
		"score":   res.SearchScore,
		"random":  res.Random,
	}
}

func FinishPayload(snap game.Snapshot) map[string]any {
	winner := ""
	if snap.Status.Status.Kind == game.Won {
		winner = snap.Status.Status.Winner.String()
	}
	return map[string]any{
		"gameId":    snap.ID,
		"winner":    winner,
		"status":    snap.Status.Status.String(),
		"moves":     snap.Moves,
		"winning":   snap.Status.Winning,
		"duration":  snap.Duration.Seconds(),
		"startedAt": snap.StartedAt,
		"endedAt":   snap.EndedAt,
	}
}

func (p *Producer) Close() {
	if p == nil || p.writer == nil {
		return
	}
	_ = p.writer.Close()
}
