package http

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/ports"
	"discount/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	sessionKey        = "session"
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
)

// authenticate attaches the session of a valid bearer token. Requests without a
// token pass through anonymously; a bad, expired or signed-out token is rejected.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
		}

		session, err := s.infra.Tokens.Parse(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		revoked, err := s.infra.Sessions.IsRevoked(c.Request().Context(), session.ID)
		if err != nil {
			return err
		}
		if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "session has ended")
		}

		c.Set(sessionKey, session)
		return next(c)
	}
}

func requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := sessionOf(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

// idempotent deduplicates requests carrying an Idempotency-Key header. Keys are
// namespaced by caller so two users cannot collide. A repeated key is answered with
// the stored response of the first request, or 409 while that request still runs.
// A request that fails frees its key so the client can retry with it.
func (s *Server) idempotent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := strings.TrimSpace(c.Request().Header.Get(idempotencyHeader))
		if key == "" {
			return next(c)
		}

		owner := "anonymous"
		if session, ok := sessionOf(c); ok {
			owner = session.Actor.ID.String()
		}
		key = owner + ":" + c.Request().Method + ":" + c.Path() + ":" + key

		ctx := c.Request().Context()
		claimed, reply, err := s.infra.Idempotency.Begin(ctx, key, s.infra.IdempotencyTTL)
		if err != nil {
			s.logger.Warn("idempotency store unavailable", zap.Error(err))
			return err
		}
		if !claimed {
			if reply == nil {
				return errs.ErrDuplicateRequest
			}
			c.Response().Header().Set(replayedHeader, "true")
			return c.Blob(reply.Status, reply.ContentType, reply.Body)
		}

		res := c.Response()
		recorder := &bodyRecorder{ResponseWriter: res.Writer}
		res.Writer = recorder
		err = next(c)
		res.Writer = recorder.ResponseWriter

		// the outcome must be recorded even when the client went away
		ctx = context.WithoutCancel(ctx)
		if err != nil || res.Status < http.StatusOK || res.Status >= http.StatusMultipleChoices {
			if releaseErr := s.infra.Idempotency.Release(ctx, key); releaseErr != nil {
				s.logger.Warn("release idempotency key", zap.Error(releaseErr))
			}
			return err
		}

		completed := ports.IdempotentReply{
			Status:      res.Status,
			ContentType: res.Header().Get(echo.HeaderContentType),
			Body:        recorder.body.Bytes(),
		}
		if completeErr := s.infra.Idempotency.Complete(ctx, key, completed, s.infra.IdempotencyTTL); completeErr != nil {
			s.logger.Warn("store idempotent reply", zap.Error(completeErr))
			if releaseErr := s.infra.Idempotency.Release(ctx, key); releaseErr != nil {
				s.logger.Warn("release idempotency key", zap.Error(releaseErr))
			}
		}
		return nil
	}
}

// bodyRecorder copies what a handler writes so it can be replayed.
type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func sessionOf(c echo.Context) (ports.Session, bool) {
	session, ok := c.Get(sessionKey).(ports.Session)
	return session, ok
}

// actorOf returns the caller; routes using it sit behind requireSession.
func actorOf(c echo.Context) kernel.Actor {
	session, _ := sessionOf(c)
	return session.Actor
}

func optionalActor(c echo.Context) *kernel.Actor {
	session, ok := sessionOf(c)
	if !ok {
		return nil
	}
	return &session.Actor
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

func optionalID(raw string) (*kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
