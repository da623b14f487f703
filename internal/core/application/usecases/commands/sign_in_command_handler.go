package commands

import (
	"context"
	"errors"

	"discount/internal/core/ports"
	"discount/internal/pkg/errs"
)

// SignInResult is a signed token and the session it encodes.
type SignInResult struct {
	Token   string
	Session ports.Session
}

// SignInCommandHandler reports unknown emails and wrong passwords alike as
// errs.ErrInvalidCredentials.
type SignInCommandHandler struct {
	uowFactory UoWFactory
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
}

func NewSignInCommandHandler(uowFactory UoWFactory, hasher ports.PasswordHasher, issuer ports.TokenIssuer) SignInCommandHandler {
	return SignInCommandHandler{uowFactory: uowFactory, hasher: hasher, issuer: issuer}
}

func (h SignInCommandHandler) Handle(ctx context.Context, command SignInCommand) (SignInResult, error) {
	if err := command.Validate(); err != nil {
		return SignInResult{}, err
	}

	acc, err := h.uowFactory.Create().AccountRepository().GetByEmail(ctx, command.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return SignInResult{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return SignInResult{}, err
	}

	if err = h.hasher.Compare(acc.PasswordHash(), command.Password()); err != nil {
		return SignInResult{}, err
	}

	token, session, err := h.issuer.Issue(acc.Actor(), acc.Email())
	if err != nil {
		return SignInResult{}, err
	}
	return SignInResult{Token: token, Session: session}, nil
}

type SignOutCommandHandler struct {
	revoker ports.SessionRevoker
}

func NewSignOutCommandHandler(revoker ports.SessionRevoker) SignOutCommandHandler {
	return SignOutCommandHandler{revoker: revoker}
}

func (h SignOutCommandHandler) Handle(ctx context.Context, command SignOutCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	session := command.Session()
	return h.revoker.Revoke(ctx, session.ID, session.ExpiresAt)
}
