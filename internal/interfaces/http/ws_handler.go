package http

import (
	"errors"
	"strconv"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/domain"
	"github.com/jhoicas/kiosko-api/internal/realtime"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// WSHandler acepta conexiones WebSocket de kiosks y paneles. El token viaja
// por query param (los clientes WebSocket del navegador no mandan headers) y
// un token ausente o inválido cierra con 1008 (policy violation) y un motivo
// legible.
type WSHandler struct {
	authUC   *auth.AuthUseCase
	registry *realtime.Registry
	log      *logger.Logger
}

// NewWSHandler construye el handler.
func NewWSHandler(authUC *auth.AuthUseCase, registry *realtime.Registry, log *logger.Logger) *WSHandler {
	return &WSHandler{authUC: authUC, registry: registry, log: log}
}

// UpgradeRequired rechaza requests que no pidan upgrade a WebSocket.
func (h *WSHandler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// autenticar clasifica el token del handshake. Si no verifica, devuelve
// identidad nil y el motivo con el que cerrar 1008.
func (h *WSHandler) autenticar(token string) (*auth.Identity, string) {
	if token == "" {
		return nil, "Token no proporcionado"
	}
	id, err := h.authUC.Verify(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, "Token expirado"
		}
		return nil, "Token inválido"
	}
	return id, ""
}

// localDeConexion resuelve el local al que queda atada la conexión.
// super_admin puede conectarse sin local (monitor de todos los locales) o
// pedir uno puntual por query; el resto queda atado al de su token.
func localDeConexion(id *auth.Identity, localQuery string) int64 {
	if !id.EsSuperAdmin() {
		return id.LocalID
	}
	if localQuery != "" {
		if parsed, err := strconv.ParseInt(localQuery, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// Handle corre el ciclo de vida de una conexión: autenticar, registrar,
// drenar lecturas hasta que el cliente corte y desregistrar.
func (h *WSHandler) Handle() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, motivo := h.autenticar(conn.Query("token"))
		if id == nil {
			h.closeWithPolicy(conn, motivo)
			return
		}

		localID := localDeConexion(id, conn.Query("local_id"))
		wsID := h.registry.Connect(conn, localID)
		defer h.registry.Disconnect(conn)
		h.log.Info().Str("ws_id", wsID).Int64("local_id", localID).Msg("conexión websocket establecida")

		// Los clientes no mandan mensajes con semántica; el loop solo detecta
		// el cierre.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func (h *WSHandler) closeWithPolicy(conn *websocket.Conn, motivo string) {
	msg := fws.FormatCloseMessage(fws.ClosePolicyViolation, motivo)
	if err := conn.WriteMessage(fws.CloseMessage, msg); err != nil {
		h.log.Debug().Err(err).Msg("no se pudo enviar el close frame")
	}
	_ = conn.Close()
}
