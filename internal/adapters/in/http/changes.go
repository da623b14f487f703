package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"discount/internal/core/ports"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// StreamChanges handles GET /api/v1/changes as server-sent events. Each event names
// the changed table and row; clients re-fetch what they show. A "resync" event means
// notifications were lost and everything should be re-fetched.
func (s *Server) StreamChanges(c echo.Context) error {
	ctx := c.Request().Context()
	changes, err := s.infra.Changes.Subscribe(ctx)
	if err != nil {
		return err
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-keepAlive.C:
			if _, err = fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			payload, marshalErr := json.Marshal(change)
			if marshalErr != nil {
				s.logger.Warn("encode change", zap.Error(marshalErr))
				continue
			}
			if _, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventName(change.Op), payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func eventName(op ports.ChangeOp) string {
	if op == ports.ChangeResync {
		return "resync"
	}
	return "change"
}
