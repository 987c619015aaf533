package service

import (
	"context"
	"errors"
	"fmt"

	"chatbot/internal/domain"

	"go.uber.org/zap"
)

// ErrEmptyMessage is returned when the client sends no message.
var ErrEmptyMessage = errors.New("no message provided")

// Observer receives chat outcomes; internal/metrics implements it.
type Observer interface {
	ObserveReply(rule string)
	ObserveRecordFailure()
}

type nopObserver struct{}

func (nopObserver) ObserveReply(string)   {}
func (nopObserver) ObserveRecordFailure() {}

// ChatResult is what the gateway returns for one message.
type ChatResult struct {
	Response string
	Rule     string
	Exchange domain.Exchange

	// Logged is false when the exchange could not be written in lenient mode.
	Logged bool
}

// ChatService matches a message and logs the exchange.
type ChatService struct {
	responder *Responder
	exchanges domain.ExchangeRepository
	observer  Observer
	logger    *zap.Logger
	strict    bool
}

// NewChatService wires the responder and the exchange log. When strict is
// true a failed write fails the request; otherwise the reply is still served.
func NewChatService(responder *Responder, exchanges domain.ExchangeRepository, observer Observer, logger *zap.Logger, strict bool) *ChatService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &ChatService{
		responder: responder,
		exchanges: exchanges,
		observer:  observer,
		logger:    logger,
		strict:    strict,
	}
}

// Chat answers one message. The message is used as-is, without trimming.
func (s *ChatService) Chat(ctx context.Context, message string) (ChatResult, error) {
	if message == "" {
		return ChatResult{}, ErrEmptyMessage
	}

	reply := s.responder.Match(message)
	s.observer.ObserveReply(reply.Rule)
	result := ChatResult{Response: reply.Text, Rule: reply.Rule}

	ex, err := s.exchanges.Record(ctx, message, reply.Text)
	if err != nil {
		s.observer.ObserveRecordFailure()
		if s.strict {
			return ChatResult{}, fmt.Errorf("record exchange: %w", err)
		}
		s.logger.Warn("exchange not recorded, serving reply anyway",
			zap.String("rule", reply.Rule),
			zap.Error(err))
		return result, nil
	}

	result.Exchange = ex
	result.Logged = true
	s.logger.Debug("chat handled",
		zap.Int64("exchange_id", ex.ID),
		zap.String("rule", reply.Rule))
	return result, nil
}
