package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/dto"
	"github.com/noah-isme/gpa-go-api/internal/observability"
)

const celebrationBufferSize = 16

// CelebrationService fans out celebration events to presentation
// subscribers. The calculate path fires events into it and moves on; a slow
// or absent subscriber never delays a calculation.
type CelebrationService interface {
	Emit(ctx context.Context, event dto.CelebrationEvent)
	Subscribe() (<-chan dto.CelebrationEvent, func())
	Start(ctx context.Context)
}

type celebrationService struct {
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	broker      *celebrationBroker
	nodeID      string
}

type celebrationEnvelope struct {
	Source string               `json:"source"`
	Event  dto.CelebrationEvent `json:"event"`
	SentAt time.Time            `json:"sent_at"`
}

type celebrationBroker struct {
	mu          sync.RWMutex
	subscribers map[chan dto.CelebrationEvent]struct{}
}

// NewCelebrationService constructs the fan-out service. The NATS connection
// is optional; without it events stay within the local process.
func NewCelebrationService(natsConn *nats.Conn, natsSubject string, logger zerolog.Logger) CelebrationService {
	return &celebrationService{
		nats:        natsConn,
		natsSubject: natsSubject,
		logger:      logger.With().Str("component", "celebration_service").Logger(),
		broker: &celebrationBroker{
			subscribers: make(map[chan dto.CelebrationEvent]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

// Start begins consuming cross-node events when NATS is configured.
func (s *celebrationService) Start(ctx context.Context) {
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

// Emit broadcasts the event to local subscribers and, when configured, to
// other nodes via NATS. Failures are logged and swallowed: celebration is
// cosmetic and must never affect the result already computed.
func (s *celebrationService) Emit(ctx context.Context, event dto.CelebrationEvent) {
	observability.Celebrations().Inc()
	s.broker.broadcast(event)

	if s.nats == nil || s.natsSubject == "" {
		return
	}

	envelope := celebrationEnvelope{
		Source: s.nodeID,
		Event:  event,
		SentAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode celebration event")
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish celebration event")
	}
}

// Subscribe registers a listener and returns its channel plus a cleanup func.
func (s *celebrationService) Subscribe() (<-chan dto.CelebrationEvent, func()) {
	channel := make(chan dto.CelebrationEvent, celebrationBufferSize)

	s.broker.subscribe(channel)
	observability.CelebrationClients().Inc()

	cleanup := func() {
		s.broker.unsubscribe(channel)
		observability.CelebrationClients().Dec()
	}

	return channel, cleanup
}

func (s *celebrationService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "gpa-celebrations", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats celebrations subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain celebration nats subscription")
		}
	}()
}

func (s *celebrationService) handleEvent(payload []byte) {
	var envelope celebrationEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.logger.Warn().Err(err).Msg("invalid celebration event payload")
		return
	}

	if envelope.Source == s.nodeID {
		return
	}

	s.broker.broadcast(envelope.Event)
}

func (b *celebrationBroker) subscribe(ch chan dto.CelebrationEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[ch] = struct{}{}
}

func (b *celebrationBroker) unsubscribe(ch chan dto.CelebrationEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

func (b *celebrationBroker) broadcast(event dto.CelebrationEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block the emitter.
		}
	}
}
