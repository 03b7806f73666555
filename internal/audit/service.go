// Package audit records portal actions — session lifecycle, bookings, estado
// changes, schedule toggles — in the one store the portal owns itself.
package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/repository"
)

// Service subscribes to dispatcher events and appends audit rows.
type Service struct {
	dispatcher events.Dispatcher
	repo       repository.AuditRepository
	logger     *zap.Logger
}

// NewService creates the service. repo may be nil when no audit store is
// configured; events are then only logged.
func NewService(dispatcher events.Dispatcher, repo repository.AuditRepository, logger *zap.Logger) *Service {
	return &Service{dispatcher: dispatcher, repo: repo, logger: logger}
}

// RegisterHandlers subscribes to every audited event type.
func (s *Service) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventSessionCreated,
		events.EventSessionCleared,
		events.EventTurnoBooked,
		events.EventTurnoEstadoChanged,
		events.EventTurnoDeleted,
		events.EventHorarioToggled,
		events.EventPerfilUpdated,
	} {
		s.dispatcher.Subscribe(t, s.record)
	}
}

func (s *Service) record(ctx context.Context, event events.Event) error {
	s.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Int("actor_id", event.Actor.SubjectID),
	)
	if s.repo == nil {
		return nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		payload = nil
	}
	entry := &repository.AuditEntry{
		ID:        event.ID,
		EventType: string(event.Type),
		SessionID: event.SessionID,
		ActorRole: string(event.Actor.Role),
		ActorID:   event.Actor.SubjectID,
		Payload:   payload,
	}
	return s.repo.Append(ctx, entry)
}
