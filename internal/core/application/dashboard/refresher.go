package dashboard

import (
	"context"
	"sync"
	"time"

	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/ports"

	faster "github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source reads the collections of a snapshot from the backend.
type Source interface {
	Offers(ctx context.Context) ([]*offer.Offer, error)
	Customers(ctx context.Context) ([]queries.CustomerListItem, error)
	Coupons(ctx context.Context) ([]*coupon.Coupon, error)
	Orders(ctx context.Context) ([]*order.Order, error)
}

// snapshotTables are the tables whose changes make the snapshot stale.
var snapshotTables = map[string]struct{}{
	"offers":    {},
	"customers": {},
	"coupons":   {},
	"orders":    {},
}

// Refresher is the only writer of whole snapshots. Refresh calls are serialized.
type Refresher struct {
	source Source
	store  *Store
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewRefresher(source Source, store *Store, logger *zap.Logger) *Refresher {
	return &Refresher{
		source: source,
		store:  store,
		logger: logger.With(zap.String("component", "dashboard_refresher")),
		now:    time.Now,
	}
}

// Refresh fetches every collection in parallel and replaces the snapshot. When any
// fetch fails the previous snapshot is kept.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot.Offers, err = r.source.Offers(gctx)
		if err != nil {
			return faster.Wrap(err, "offers")
		}
		return nil
	})
	g.Go(func() (err error) {
		snapshot.Customers, err = r.source.Customers(gctx)
		if err != nil {
			return faster.Wrap(err, "customers")
		}
		return nil
	})
	g.Go(func() (err error) {
		snapshot.Coupons, err = r.source.Coupons(gctx)
		if err != nil {
			return faster.Wrap(err, "coupons")
		}
		return nil
	})
	g.Go(func() (err error) {
		snapshot.Orders, err = r.source.Orders(gctx)
		if err != nil {
			return faster.Wrap(err, "orders")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return faster.Wrap(err, "refresh dashboard")
	}

	r.store.ReplaceAll(snapshot, r.now())
	return nil
}

// Watch refreshes once, then again for every batch of relevant changes until ctx is
// done or the feed closes. Changes queued while a refresh runs collapse into one.
func (r *Refresher) Watch(ctx context.Context, feed ports.ChangeFeed) error {
	changes, err := feed.Subscribe(ctx)
	if err != nil {
		return faster.Wrap(err, "subscribe to changes")
	}

	r.refreshAndLog(ctx, "initial")

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if !relevant(change) {
				continue
			}
			open := drain(changes)
			r.refreshAndLog(ctx, string(change.Op))
			if !open {
				return nil
			}
		}
	}
}

func (r *Refresher) refreshAndLog(ctx context.Context, reason string) {
	if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.Warn("refresh failed", zap.String("reason", reason), zap.Error(err))
	}
}

func relevant(change ports.Change) bool {
	if change.Op == ports.ChangeResync {
		return true
	}
	_, ok := snapshotTables[change.Table]
	return ok
}

// drain discards what is already buffered. It returns false if the channel closed.
func drain(changes <-chan ports.Change) bool {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}
