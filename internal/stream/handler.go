package stream

import (
	"net/http"
	"sync"
	"time"

	"stock-trading-backend/internal/market"
	"stock-trading-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultWriteWait = time.Second

// Handler owns the per-connection protocol: register with the default
// symbol, relay allowed selections, deregister on disconnect.
type Handler struct {
	registry      *Registry
	allowed       market.AllowList
	defaultSymbol string
	writeWait     time.Duration
	upgrader      websocket.Upgrader
	logger        *zap.Logger

	mu     sync.Mutex
	closed bool
}

func NewHandler(registry *Registry, allowed market.AllowList, defaultSymbol string, writeWait time.Duration, logger *zap.Logger) *Handler {
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}
	return &Handler{
		registry:      registry,
		allowed:       allowed,
		defaultSymbol: defaultSymbol,
		writeWait:     writeWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeWS upgrades the request and serves the connection until it closes.
func (h *Handler) ServeWS(ctx *gin.Context) {
	ws, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// the upgrader has already written an HTTP error response
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.Serve(newWSConn(ws, h.writeWait))
}

// Serve runs the receive loop for one connection. It returns once the
// connection fails or closes; the connection is deregistered and closed by
// then.
func (h *Handler) Serve(conn Conn) {
	log := h.logger.With(zap.String("conn_id", conn.ID()))

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		log.Info("rejecting connection, handler is shut down")
		_ = conn.Close()
		return
	}
	err := h.registry.Register(conn, h.defaultSymbol)
	h.mu.Unlock()
	if err != nil {
		log.Error("failed to register connection", zap.Error(err))
		_ = conn.Close()
		return
	}
	metrics.ConnectedClients.Inc()
	log.Info("new connection", zap.String("symbol", h.defaultSymbol))

	defer func() {
		if h.registry.Remove(conn) {
			metrics.ConnectedClients.Dec()
		}
		_ = conn.Close()
	}()

	for {
		msg, err := conn.Receive()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("connection lost", zap.Error(err))
			} else {
				log.Info("disconnected")
			}
			return
		}

		symbol, ok := h.allowed.Match(msg)
		if !ok {
			continue
		}
		if h.registry.SetSymbol(conn, symbol) {
			log.Info("switched symbol", zap.String("symbol", symbol))
		}
	}
}

// Shutdown closes every registered connection, which ends their receive
// loops. Connections served afterwards are closed without registering.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	for _, sub := range h.registry.Snapshot() {
		_ = sub.Conn.Close()
	}
}
