package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 64
	broadcastQueue = 256
)

type stockMessage struct {
	Type   string              `json:"type"`
	Levels []domain.StockLevel `json:"levels"`
}

type feedClient struct {
	conn       *websocket.Conn
	send       chan []byte
	employeeID string
}

// StockFeed pushes stock level changes to every connected websocket. Only
// the Run goroutine touches the client set.
type StockFeed struct {
	upgrader    websocket.Upgrader
	clients     map[*feedClient]struct{}
	broadcast   chan []byte
	register    chan *feedClient
	unregister  chan *feedClient
	done        chan struct{}
	subscribers atomic.Int64
}

func NewStockFeed(allowedOrigins []string) *StockFeed {
	return &StockFeed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clients:    make(map[*feedClient]struct{}),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *StockFeed) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.subscribers.Store(int64(len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow reader.
					h.drop(client)
				}
			}
		}
	}
}

func (h *StockFeed) drop(client *feedClient) {
	delete(h.clients, client)
	close(client.send)
	h.subscribers.Store(int64(len(h.clients)))
}

// Publish queues levels for broadcast. It never blocks: when the queue is
// full the update is dropped and clients catch up on the next change.
func (h *StockFeed) Publish(levels []domain.StockLevel) {
	if len(levels) == 0 {
		return
	}

	message, err := json.Marshal(stockMessage{Type: "stock_levels", Levels: levels})
	if err != nil {
		zap.L().Error("marshal stock levels", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- message:
	default:
		zap.L().Warn("stock feed queue full, update dropped", zap.Int("levels", len(levels)))
	}
}

// HandleStockFeed godoc
// @Summary      Live stock levels
// @Description  Upgrades to a websocket that receives {"type":"stock_levels","levels":[...]} after every committed stock change.
// @Tags         stock
// @Success      101      {string}   string "Switching Protocols"
// @Failure      401      {object}   response.Err
// @Router       /stock/feed [get]
// @Security     CookieAuth
func (h *StockFeed) HandleStockFeed(ctx *gin.Context) {
	who, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// The upgrader has already written the error response.
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn:       conn,
		send:       make(chan []byte, clientBuffer),
		employeeID: who.SubjectID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (h *StockFeed) subscriberCount() int64 {
	return h.subscribers.Load()
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only exists to notice when the client goes away; incoming
// messages are discarded.
func (c *feedClient) readPump(h *StockFeed) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Info("stock feed client closed", zap.String("employee_id", c.employeeID), zap.Error(err))
			}
			return
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}
