package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/ambiance/internal/domain"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"
)

type feedMessage struct {
	Kind         ports.EvaluationEventKind `json:"kind"`
	EvaluationID string                    `json:"evaluationId"`
	EvaluatorID  string                    `json:"evaluatorId"`
	MediaID      string                    `json:"mediaId"`
	At           time.Time                 `json:"at"`
}

// FeedHandler streams evaluation events to admin and chercheur dashboards.
// Browsers cannot set headers on upgrade, so the token comes as ?token=.
func FeedHandler(hub *Hub, identity ports.IdentityResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := identity.Resolve(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if err := domain.Authorize(id, domain.IsAdminOrChercheur); err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		hub.Register(FeedRoom, conn)
		defer hub.Unregister(FeedRoom, conn)

		// the feed is one-way; reading only detects the disconnect
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

// Forward pushes events into the feed room until ctx ends or events closes.
func Forward(ctx context.Context, hub *Hub, events <-chan ports.EvaluationEvent, log *logger.ZapLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			payload, err := json.Marshal(feedMessage{
				Kind:         ev.Kind,
				EvaluationID: ev.EvaluationID,
				EvaluatorID:  ev.EvaluatorID,
				MediaID:      ev.MediaID,
				At:           ev.At,
			})
			if err != nil {
				log.Log(logger.LogEntry{Level: "error", Message: "feed marshal failed", Error: err})
				continue
			}
			hub.SendToRoom(FeedRoom, payload)
		}
	}
}
