package commands

import (
	"context"
	"errors"
	"time"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
)

// SignUpCommandHandler creates the account and links it to the customer profile with
// the same email, creating the profile when the customer never received a coupon.
type SignUpCommandHandler struct {
	uowFactory UoWFactory
	hasher     ports.PasswordHasher
}

func NewSignUpCommandHandler(uowFactory UoWFactory, hasher ports.PasswordHasher) SignUpCommandHandler {
	return SignUpCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

// Handle returns a StateConflictError when the email is already registered.
func (h SignUpCommandHandler) Handle(ctx context.Context, command SignUpCommand) (*account.Account, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	customers := uow.CustomerRepository()
	profile, err := customers.GetByEmail(ctx, command.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		if profile, err = customer.NewCustomer(command.Name(), command.Email(), command.Phone(), now); err != nil {
			return nil, err
		}
		err = customers.Add(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	created, err := account.NewAccount(command.Email(), hash, kernel.RoleCustomer,
		account.Binding{CustomerID: profile.ID().Ptr()}, now)
	if err != nil {
		return nil, err
	}
	if err = uow.AccountRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
