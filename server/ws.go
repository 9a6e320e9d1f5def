package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/etnz/younginvestor"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
)

const (
	clientBuffer = 16
	writeTimeout = 5 * time.Second
)

// hub fans snapshots out to websocket clients. Slow clients miss snapshots
// rather than block the game.
type hub struct {
	log     zerolog.Logger
	origins []string

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	send chan []byte
}

func newHub(log zerolog.Logger, allowedOrigins []string) *hub {
	return &hub{
		log:     log.With().Str("component", "ws").Logger(),
		origins: originPatterns(allowedOrigins),
		clients: make(map[*client]struct{}),
	}
}

// broadcast is a game subscriber.
func (h *hub) broadcast(s younginvestor.Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode snapshot")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn().Msg("client too slow, snapshot dropped")
		}
	}
}

func (h *hub) add() (*client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	c := &client{send: make(chan []byte, clientBuffer)}
	h.clients[c] = struct{}{}
	return c, true
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// close disconnects every client.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// handle streams the current snapshot then every change as JSON text messages.
func (h *hub) handle(current func() younginvestor.Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
		if err != nil {
			h.log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.CloseNow()

		c, ok := h.add()
		if !ok {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
		defer h.remove(c)

		// the client only listens, reads are drained to notice when it leaves
		ctx := conn.CloseRead(r.Context())

		first, err := json.Marshal(current())
		if err != nil {
			h.log.Error().Err(err).Msg("failed to encode snapshot")
			return
		}
		if err := write(ctx, conn, first); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-c.send:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
					return
				}
				if err := write(ctx, conn, data); err != nil {
					h.log.Debug().Err(err).Msg("websocket write failed")
					return
				}
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

// originPatterns turns CORS origins into the host patterns websocket.Accept
// matches against.
func originPatterns(origins []string) []string {
	var patterns []string
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, strings.TrimSuffix(o, "/"))
	}
	return patterns
}
