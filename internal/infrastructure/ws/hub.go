package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/pkg/logger"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var _ subscription.Broadcaster = (*Hub)(nil)

// Hub mantiene las conexiones websocket agrupadas por empresa. Una empresa
// puede tener varias pestañas abiertas; todas reciben los eventos.
type Hub struct {
	log *logger.Logger

	mu    sync.RWMutex
	conns map[string]map[*websocket.Conn]*sync.Mutex
}

// NewHub construye el hub vacío.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[string]map[*websocket.Conn]*sync.Mutex),
	}
}

// Serve registra la conexión ya actualizada y la atiende hasta que cierre.
// Pensado para usarse con websocket.New del contrib de Fiber.
func (h *Hub) Serve(companyID string, conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[companyID]; !ok {
		h.conns[companyID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.conns[companyID][conn] = &sync.Mutex{}
	h.mu.Unlock()

	h.log.Info().Str("company_id", companyID).Msg("ws: empresa conectada")

	go h.pingLoop(companyID, conn)
	h.readLoop(companyID, conn)
}

func (h *Hub) pingLoop(companyID string, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.RLock()
		_, alive := h.conns[companyID][conn]
		h.mu.RUnlock()
		if !alive {
			return
		}
		h.safeWrite(companyID, conn, func(c *websocket.Conn) error {
			return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		})
	}
}

func (h *Hub) readLoop(companyID string, conn *websocket.Conn) {
	defer h.closeConn(companyID, conn)

	conn.SetReadLimit(16 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// El cliente no envía nada útil: el loop solo mantiene viva la conexión.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (h *Hub) closeConn(companyID string, conn *websocket.Conn) {
	_ = conn.Close()
	h.mu.Lock()
	if set, ok := h.conns[companyID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, companyID)
		}
	}
	h.mu.Unlock()
	h.log.Info().Str("company_id", companyID).Msg("ws: empresa desconectada")
}

func (h *Hub) safeWrite(companyID string, conn *websocket.Conn, fn func(*websocket.Conn) error) {
	h.mu.RLock()
	mu := h.conns[companyID][conn]
	h.mu.RUnlock()
	if mu == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(conn); err != nil {
		h.log.Warn().Err(err).Str("company_id", companyID).Msg("ws: write falló, cerrando conexión")
		go h.closeConn(companyID, conn)
	}
}

// envelope formato de todos los eventos salientes.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// BroadcastPaymentConcluded emite el evento company-{id}-payment con acción
// CONCLUIDA y la empresa ya renovada, a todas las conexiones de la empresa.
func (h *Hub) BroadcastPaymentConcluded(companyID string, company *dto.CompanyResponse) {
	h.publish(companyID, envelope{
		Event: fmt.Sprintf("company-%s-payment", companyID),
		Data: struct {
			Action  string               `json:"action"`
			Company *dto.CompanyResponse `json:"company"`
		}{Action: "CONCLUIDA", Company: company},
	})
}

func (h *Hub) publish(companyID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Msg("ws: marshal del evento falló")
		return
	}

	h.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(h.conns[companyID]))
	for conn := range h.conns[companyID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		h.safeWrite(companyID, conn, func(c *websocket.Conn) error {
			return c.WriteMessage(websocket.TextMessage, data)
		})
	}
}
