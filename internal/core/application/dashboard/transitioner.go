package dashboard

import (
	"context"
	"time"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
)

// StatusChanger moves an order on the backend and returns its authoritative state.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, actor kernel.Actor, orderID kernel.UUID, target order.Status) (*order.Order, error)
}

// OptimisticTransitioner shows a transition before the backend has answered.
type OptimisticTransitioner struct {
	store   *Store
	backend StatusChanger
	timeout time.Duration
}

func NewOptimisticTransitioner(store *Store, backend StatusChanger, timeout time.Duration) OptimisticTransitioner {
	return OptimisticTransitioner{store: store, backend: backend, timeout: timeout}
}

// Transition marks the order as target in the store, then asks the backend. On
// success the backend's order replaces the tentative one; on any error, including
// the timeout, the last confirmed order is restored and the error returned so the
// caller can offer a retry.
func (t OptimisticTransitioner) Transition(
	ctx context.Context,
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
) (*order.Order, error) {
	t.store.ApplyTentative(orderID, target)

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	o, err := t.backend.ChangeStatus(ctx, actor, orderID, target)
	if err != nil {
		t.store.Rollback(orderID)
		return nil, err
	}

	t.store.Confirm(o)
	return o, nil
}

var _ StatusChanger = CommandBackend{}

// CommandBackend runs transitions through the change-status command handler.
type CommandBackend struct {
	handler commands.ChangeOrderStatusCommandHandler
}

func NewCommandBackend(handler commands.ChangeOrderStatusCommandHandler) CommandBackend {
	return CommandBackend{handler: handler}
}

func (b CommandBackend) ChangeStatus(
	ctx context.Context,
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
) (*order.Order, error) {
	command, err := commands.NewChangeOrderStatusCommandTo(actor, orderID, target)
	if err != nil {
		return nil, err
	}
	return b.handler.Handle(ctx, command)
}
