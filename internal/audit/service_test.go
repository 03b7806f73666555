package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/repository"
)

type fakeAuditRepo struct {
	entries []repository.AuditEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *repository.AuditEntry) error {
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]repository.AuditEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func TestAuditTrailRecordsDispatchedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	repo := &fakeAuditRepo{}
	NewService(dispatcher, repo, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventTurnoBooked,
		SessionID: "sid",
		Actor:     events.Actor{Role: domain.RoleCliente, SubjectID: 7},
		Timestamp: time.Now(),
		Payload:   events.TurnoBookedPayload{TurnoID: 9, HorariosMedicosID: 4},
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "evt-1", entry.ID)
	assert.Equal(t, "turno_booked", entry.EventType)
	assert.Equal(t, "cliente", entry.ActorRole)
	assert.Equal(t, 7, entry.ActorID)
	assert.Contains(t, string(entry.Payload), `"turno_id":9`)
}

func TestAuditTrailWithoutStoreOnlyLogs(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	NewService(dispatcher, nil, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:   "evt-2",
		Type: events.EventSessionCleared,
	})
	assert.NoError(t, err)
}
