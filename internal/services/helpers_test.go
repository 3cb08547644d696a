package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"bnitrack/internal/namematch"
	"bnitrack/internal/shared/testutil"
	"bnitrack/internal/store"
	"bnitrack/pkg/contracts/domain"
)

// publishedEvent records one Broadcast call.
type publishedEvent struct {
	Type string
	Data any
}

// fakePublisher captures broadcast events for assertions.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Broadcast(eventType string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func (p *fakePublisher) last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return publishedEvent{}
	}
	return p.events[len(p.events)-1]
}

func openTestStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "bnitrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedChapterWithRoster creates the fixture chapter with the five
// members the slip fixtures reference.
func seedChapterWithRoster(t *testing.T, db *store.DB) domain.Chapter {
	t.Helper()
	ctx := context.Background()

	chapter, _, err := db.GetOrCreateChapter(ctx, "Dubai Eagles", "Dubai")
	require.NoError(t, err)

	for _, m := range testutil.SampleRoster(chapter.ID) {
		m.NormalizedName = namematch.Normalize(m.FullName())
		_, _, err := db.UpsertMember(ctx, m)
		require.NoError(t, err)
	}
	return chapter
}
