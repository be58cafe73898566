package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"server/internal/notify"
)

// wsObserver adapts one websocket connection to the hub's subscriber
// contract. Writes are mutex-guarded because room deliveries run on
// separate goroutines.
type wsObserver struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (o *wsObserver) Notify(ev notify.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enc.Encode(ev)
}

// GroupSocket upgrades to a websocket and subscribes the caller to the
// group's room. Membership is checked before the upgrade; events start
// flowing from the join onward, with no replay of anything earlier.
func (a *App) GroupSocket(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	ok, err := a.Svc.IsMember(r.Context(), a.currentAccountID(r), groupID)
	if err != nil {
		a.respondError(w, err)
		return
	}
	if !ok {
		a.error(w, http.StatusForbidden, "unauthorized", "you are not a member of this group")
		return
	}

	connID := uuid.NewString()
	websocket.Handler(func(conn *websocket.Conn) {
		defer func() { _ = conn.Close() }()

		obs := &wsObserver{enc: json.NewEncoder(conn)}
		a.Hub.Join(groupID, obs)
		a.Logger.Debug().Str("conn_id", connID).Str("group_id", groupID).Msg("room observer joined")
		defer func() {
			a.Hub.Leave(groupID, obs)
			a.Logger.Debug().Str("conn_id", connID).Str("group_id", groupID).Msg("room observer left")
		}()

		// The channel is one-way; inbound frames are drained and
		// dropped until the client disconnects.
		_, _ = io.Copy(io.Discard, conn)
	}).ServeHTTP(w, r)
}
