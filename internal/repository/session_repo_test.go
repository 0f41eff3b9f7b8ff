package repository

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gpa-go-api/internal/models"
)

func newTestRepo(t *testing.T) (SessionRepository, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionRepository(client, time.Hour), server
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	session := models.Session{ID: "abc", CreatedAt: time.Now().UTC()}
	session.ResetSubjects(3)

	require.NoError(t, repo.Save(context.Background(), &session))

	loaded, err := repo.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, session.ID, loaded.ID)
	require.Equal(t, 3, loaded.SubjectCount)
	require.Len(t, loaded.Subjects, 3)
	require.Equal(t, models.SessionStateEditing, loaded.State)
	require.Equal(t, "1", loaded.Subjects[0].ID)
	require.Equal(t, 1, loaded.Subjects[0].CreditHours)
}

func TestSessionRepositoryMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo, server := newTestRepo(t)

	session := models.Session{ID: "ttl"}
	session.ResetSubjects(1)
	require.NoError(t, repo.Save(context.Background(), &session))

	server.FastForward(2 * time.Hour)

	_, err := repo.Get(context.Background(), "ttl")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo, _ := newTestRepo(t)

	session := models.Session{ID: "gone"}
	session.ResetSubjects(2)
	require.NoError(t, repo.Save(context.Background(), &session))
	require.NoError(t, repo.Delete(context.Background(), "gone"))

	_, err := repo.Get(context.Background(), "gone")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepositoryRejectsEmptyID(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.Error(t, repo.Save(context.Background(), &models.Session{}))
}
