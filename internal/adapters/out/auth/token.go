package auth

import (
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

type sessionClaims struct {
	Role         string `json:"role"`
	Email        string `json:"email"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	DriverID     string `json:"driver_id,omitempty"`
	CustomerID   string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens. The token id is the session id used for revocation.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(actor kernel.Actor, email string) (string, ports.Session, error) {
	now := i.now()
	session := ports.Session{
		ID:        kernel.NewUUID().String(),
		Actor:     actor,
		Email:     email,
		ExpiresAt: now.Add(i.ttl).Truncate(time.Second),
	}

	claims := &sessionClaims{
		Role:         actor.Role.String(),
		Email:        email,
		RestaurantID: idString(actor.RestaurantID),
		DriverID:     idString(actor.DriverID),
		CustomerID:   idString(actor.CustomerID),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", ports.Session{}, err
	}
	return token, session, nil
}

func (i *JWTIssuer) Parse(token string) (ports.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return ports.Session{}, errs.ErrInvalidCredentials
	}

	actor, err := claims.actor()
	if err != nil {
		return ports.Session{}, errs.ErrInvalidCredentials
	}
	return ports.Session{
		ID:        claims.ID,
		Actor:     actor,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *sessionClaims) actor() (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(c.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	actor, err := kernel.NewActor(id, role)
	if err != nil {
		return kernel.Actor{}, err
	}

	if actor.RestaurantID, err = parseID(c.RestaurantID); err != nil {
		return kernel.Actor{}, err
	}
	if actor.DriverID, err = parseID(c.DriverID); err != nil {
		return kernel.Actor{}, err
	}
	if actor.CustomerID, err = parseID(c.CustomerID); err != nil {
		return kernel.Actor{}, err
	}
	return actor, nil
}

func idString(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func parseID(s string) (*kernel.UUID, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // absent binding
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
