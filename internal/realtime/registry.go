package realtime

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// TextMessage coincide con websocket.TextMessage (RFC 6455 opcode 1); se
// redeclara aquí para que el registry no dependa del paquete de websockets.
const TextMessage = 1

// Eventos conocidos que viajan por el canal en tiempo real.
const (
	EventoConectado             = "conectado"
	EventoProductoCreado        = "producto_creado"
	EventoProductoActualizado   = "producto_actualizado"
	EventoProductoEliminado     = "producto_eliminado"
	EventoCategoriaCreada       = "categoria_creada"
	EventoCategoriaActualizada  = "categoria_actualizada"
	EventoCategoriaEliminada    = "categoria_eliminada"
	EventoCategoriasReordenadas = "categorias_reordenadas"
	EventoCarruselActualizado   = "carrusel_config_actualizada"
)

// Conn es el contrato mínimo de un canal bidireccional. Lo satisface
// *websocket.Conn (gofiber/contrib/websocket) y cualquier fake en tests.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// entry una conexión registrada. localID == 0 significa conexión sin local
// (monitor): recibe broadcasts generales y los dirigidos a cualquier local.
type entry struct {
	localID int64
	wsID    string
	conn    Conn
}

// Registry mantiene las conexiones WebSocket activas y reparte eventos por
// local. Toda mutación y toda iteración de la lista pasa por el mutex; los
// envíos de red se hacen sobre una copia tomada bajo el lock para no
// bloquear connect/disconnect durante un send lento.
//
// La entrega es best-effort at-most-once: un fallo de envío a una conexión
// se registra y no interrumpe la entrega al resto ni sube al caller. Los
// kiosks reconcilian re-leyendo el menú al reconectar.
type Registry struct {
	mu      sync.Mutex
	entries []entry
	log     *logger.Logger
}

// NewRegistry construye un registry vacío.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{log: log}
}

// mensaje sobre el cable: {"evento": ..., "datos": ...}.
type envelope struct {
	Evento string      `json:"evento"`
	Datos  interface{} `json:"datos"`
}

// welcome payload del evento "conectado". LocalID viaja como string o null
// para mantener el contrato con el frontend del kiosk.
type welcome struct {
	Evento  string  `json:"evento"`
	WsID    string  `json:"ws_id"`
	LocalID *string `json:"local_id"`
}

// Connect registra una conexión, opcionalmente atada a un local (localID > 0),
// y le envía el mensaje de bienvenida con su ws_id. El fallo del envío de
// bienvenida se registra pero no des-registra la conexión: si el canal está
// roto, el read loop del handler la desconectará enseguida.
func (r *Registry) Connect(conn Conn, localID int64) string {
	wsID := uuid.New().String()

	r.mu.Lock()
	r.entries = append(r.entries, entry{localID: localID, wsID: wsID, conn: conn})
	total := len(r.entries)
	r.mu.Unlock()

	r.log.Debug().
		Str("ws_id", wsID).
		Int64("local_id", localID).
		Int("total", total).
		Msg("ws conectado")

	var localStr *string
	if localID != 0 {
		s := strconv.FormatInt(localID, 10)
		localStr = &s
	}
	payload, _ := json.Marshal(welcome{Evento: EventoConectado, WsID: wsID, LocalID: localStr})
	if err := conn.WriteMessage(TextMessage, payload); err != nil {
		r.log.Warn().Err(err).Str("ws_id", wsID).Msg("fallo el mensaje de bienvenida")
	}
	return wsID
}

// Disconnect elimina todas las entradas de la conexión (se espera cero o una)
// y cierra el canal best-effort. Es idempotente: una segunda llamada con la
// misma conexión no tiene efecto.
func (r *Registry) Disconnect(conn Conn) {
	r.mu.Lock()
	var removed []entry
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.conn == conn {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	total := len(r.entries)
	r.mu.Unlock()

	for _, e := range removed {
		r.log.Debug().
			Str("ws_id", e.wsID).
			Int64("local_id", e.localID).
			Int("total", total).
			Msg("ws desconectado")
	}
	_ = conn.Close()
}

// SetLocal re-asigna el local de una conexión existente por su ws_id.
// Devuelve false si el ws_id no está registrado.
func (r *Registry) SetLocal(wsID string, localID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].wsID == wsID {
			r.entries[i].localID = localID
			return true
		}
	}
	return false
}

// Broadcast serializa {"evento","datos"} una sola vez y lo envía a las
// conexiones destino. Reglas de alcance:
//   - localID == 0: a todas las conexiones.
//   - localID > 0: a las conexiones de ese local más las conexiones sin
//     local asignado (monitores).
//
// Nunca retorna error: los fallos por conexión se registran y se sigue con
// el resto.
func (r *Registry) Broadcast(evento string, datos interface{}, localID int64) {
	payload, err := json.Marshal(envelope{Evento: evento, Datos: datos})
	if err != nil {
		r.log.Error().Err(err).Str("evento", evento).Msg("no se pudo serializar el evento")
		return
	}

	r.mu.Lock()
	snapshot := make([]entry, len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	enviados := 0
	for _, e := range snapshot {
		if localID != 0 && e.localID != localID && e.localID != 0 {
			continue
		}
		if err := e.conn.WriteMessage(TextMessage, payload); err != nil {
			r.log.Warn().Err(err).Str("ws_id", e.wsID).Str("evento", evento).Msg("fallo el envío")
			continue
		}
		enviados++
	}

	r.log.Debug().
		Str("evento", evento).
		Int64("local_id", localID).
		Int("enviados", enviados).
		Msg("evento difundido")
}

// BroadcastToLocal envía un evento únicamente a las conexiones cuyo local
// coincide exactamente (sin incluir monitores). Se usa para pushes de
// configuración privados del local, como el carrusel.
func (r *Registry) BroadcastToLocal(localID int64, evento string, datos interface{}) {
	payload, err := json.Marshal(envelope{Evento: evento, Datos: datos})
	if err != nil {
		r.log.Error().Err(err).Str("evento", evento).Msg("no se pudo serializar el evento")
		return
	}

	r.mu.Lock()
	snapshot := make([]entry, len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	enviados := 0
	for _, e := range snapshot {
		if e.localID != localID {
			continue
		}
		if err := e.conn.WriteMessage(TextMessage, payload); err != nil {
			r.log.Warn().Err(err).Str("ws_id", e.wsID).Str("evento", evento).Msg("fallo el envío")
			continue
		}
		enviados++
	}

	r.log.Debug().
		Str("evento", evento).
		Int64("local_id", localID).
		Int("enviados", enviados).
		Msg("evento difundido al local")
}

// Count devuelve la cantidad de conexiones activas.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
