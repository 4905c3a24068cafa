package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/grievance-management/internal/core/events"
)

// EventHandler bridges the event bus to the mail dispatcher.
type EventHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(dispatcher Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{dispatcher: dispatcher, logger: logger}
}

// Register subscribes the handler to grievance status changes.
func (h *EventHandler) Register(bus *events.EventBus) {
	bus.Subscribe(events.GrievanceStatusChangedType, h.HandleStatusChanged)
}

// HandleStatusChanged emails the submitter about a terminal status change.
func (h *EventHandler) HandleStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.GrievanceStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	summary := GrievanceSummary{
		ID:          e.GrievanceID,
		Title:       e.Title,
		Description: e.Description,
	}

	kind := KindResolved
	if e.Kind == events.StatusKindClosed {
		kind = KindClosed
	}

	if err := h.dispatcher.Notify(ctx, e.Recipient, summary, kind); err != nil {
		h.logger.Error("status notification delivery failed",
			"grievance_id", e.GrievanceID,
			"recipient", e.Recipient,
			"kind", kind,
			"error", err)
		return err
	}

	h.logger.Info("status notification sent",
		"grievance_id", e.GrievanceID,
		"kind", kind)
	return nil
}
