package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// live upgrades the connection and streams each scored guess of the game
// to the spectator until the client disconnects or the game is deleted.
func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	uid, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	// verify the game exists and belongs to the caller before upgrading
	if _, err := h.srv.Stats(ctx, player.Username, uid); err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("error upgrading connection")
		return
	}

	events, cancel := h.srv.Subscribe(uid)

	// the request context dies with this handler, so disconnects are
	// detected by the read pump instead
	done := make(chan struct{})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(done)
				return
			}
		}
	}()
	go func() {
		defer cancel()
		defer conn.Close()
		for {
			select {
			case <-done:
				return
			case result, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteJSON(result); err != nil {
					return
				}
			}
		}
	}()
}
