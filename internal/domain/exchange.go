package domain

import (
	"context"
	"time"
)

// Exchange is one logged chat turn: what the user sent and what the bot answered.
// ID and Timestamp are assigned by the store at write time.
type Exchange struct {
	ID          int64
	UserMessage string
	BotResponse string
	Timestamp   time.Time
}

// ExchangeRepository is the append-only exchange log.
type ExchangeRepository interface {
	Record(ctx context.Context, userMessage, botResponse string) (Exchange, error)
	List(ctx context.Context, limit int) ([]Exchange, error)
	Count(ctx context.Context) (int64, error)
}
