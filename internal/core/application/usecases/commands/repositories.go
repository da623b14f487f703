// Package commands contains business operations that modify system state.
// All commands follow one pattern: constructor validation, a unit of work, domain
// calls, persistence, commit.
package commands

import (
	"context"

	"discount/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// UoW gives a command every repository inside one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orders := uow.OrderRepository()
	//   drivers := uow.DriverRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CouponRepoFactory
		OfferRepoFactory
		DriverRepoFactory
		CustomerRepoFactory
		AccountRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
