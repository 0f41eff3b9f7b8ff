package service

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/dto"
	"github.com/noah-isme/gpa-go-api/internal/models"
	"github.com/noah-isme/gpa-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// fakeSessionRepo keeps sessions in a map, mirroring the store contract.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionRepo) Save(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) Get(_ context.Context, id string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

// recordingCelebrations captures emitted events for assertions.
type recordingCelebrations struct {
	events []dto.CelebrationEvent
}

func (r *recordingCelebrations) Emit(_ context.Context, event dto.CelebrationEvent) {
	r.events = append(r.events, event)
}

func (r *recordingCelebrations) Subscribe() (<-chan dto.CelebrationEvent, func()) {
	ch := make(chan dto.CelebrationEvent)
	close(ch)
	return ch, func() {}
}

func (r *recordingCelebrations) Start(context.Context) {}
