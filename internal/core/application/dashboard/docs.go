// Package dashboard keeps a local, eventually consistent copy of the backend
// collections a dashboard renders and the discipline around it.
//
// A single Refresher replaces the Store snapshot. It is fed by two producers: the
// change feed (push) and a scheduled poll. Both only ever ask for a refresh, so a
// missed or duplicated notification is harmless.
//
// Order transitions go through OptimisticTransitioner: the target status is shown at
// once, then the backend call decides. Its answer always replaces the tentative
// status, and a failure restores the last confirmed order.
//
//	store := dashboard.NewStore()
//	refresher := dashboard.NewRefresher(source, store, logger)
//	go refresher.Watch(ctx, feed)
//
//	o, err := dashboard.NewOptimisticTransitioner(store, backend, 10*time.Second).
//	    Transition(ctx, actor, orderID, order.Preparing)
package dashboard
