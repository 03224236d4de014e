package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// fakeConn implementa Conn acumulando los mensajes enviados.
type fakeConn struct {
	mu       sync.Mutex
	mensajes [][]byte
	failSend bool
	closed   int
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("conexión rota")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.mensajes = append(f.mensajes, cp)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// eventos devuelve los nombres de evento recibidos (sin contar "conectado").
func (f *fakeConn) eventos(t *testing.T) []string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.mensajes {
		var env struct {
			Evento string `json:"evento"`
		}
		require.NoError(t, json.Unmarshal(m, &env))
		if env.Evento != EventoConectado {
			out = append(out, env.Evento)
		}
	}
	return out
}

func newTestRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestConnect_EnviaBienvenidaConWsID(t *testing.T) {
	r := newTestRegistry()
	conn := &fakeConn{}

	wsID := r.Connect(conn, 7)

	require.NotEmpty(t, wsID)
	require.Len(t, conn.mensajes, 1)

	var w struct {
		Evento  string  `json:"evento"`
		WsID    string  `json:"ws_id"`
		LocalID *string `json:"local_id"`
	}
	require.NoError(t, json.Unmarshal(conn.mensajes[0], &w))
	assert.Equal(t, EventoConectado, w.Evento)
	assert.Equal(t, wsID, w.WsID)
	require.NotNil(t, w.LocalID)
	assert.Equal(t, "7", *w.LocalID)
}

func TestConnect_SinLocal_LocalIDNulo(t *testing.T) {
	r := newTestRegistry()
	conn := &fakeConn{}

	r.Connect(conn, 0)

	require.Len(t, conn.mensajes, 1)
	var w map[string]interface{}
	require.NoError(t, json.Unmarshal(conn.mensajes[0], &w))
	assert.Nil(t, w["local_id"], "una conexión sin local debe recibir local_id null")
}

// Matriz de alcance: conexiones de locales {1,1,2} más un monitor sin local.
func TestBroadcast_Alcance(t *testing.T) {
	r := newTestRegistry()
	local1a := &fakeConn{}
	local1b := &fakeConn{}
	local2 := &fakeConn{}
	monitor := &fakeConn{}
	r.Connect(local1a, 1)
	r.Connect(local1b, 1)
	r.Connect(local2, 2)
	r.Connect(monitor, 0)

	// Dirigido al local 1: llega a los dos del local 1 y al monitor.
	r.Broadcast(EventoProductoCreado, map[string]int{"id": 10}, 1)
	assert.Equal(t, []string{EventoProductoCreado}, local1a.eventos(t))
	assert.Equal(t, []string{EventoProductoCreado}, local1b.eventos(t))
	assert.Empty(t, local2.eventos(t))
	assert.Equal(t, []string{EventoProductoCreado}, monitor.eventos(t))

	// General (local 0): llega a las cuatro conexiones.
	r.Broadcast(EventoCategoriaCreada, nil, 0)
	assert.Equal(t, []string{EventoProductoCreado, EventoCategoriaCreada}, local1a.eventos(t))
	assert.Equal(t, []string{EventoCategoriaCreada}, local2.eventos(t))
	assert.Equal(t, []string{EventoProductoCreado, EventoCategoriaCreada}, monitor.eventos(t))
}

func TestBroadcastToLocal_ExcluyeMonitores(t *testing.T) {
	r := newTestRegistry()
	local1 := &fakeConn{}
	local2 := &fakeConn{}
	monitor := &fakeConn{}
	r.Connect(local1, 1)
	r.Connect(local2, 2)
	r.Connect(monitor, 0)

	r.BroadcastToLocal(1, EventoCarruselActualizado, map[string]string{"mode": "all"})

	assert.Equal(t, []string{EventoCarruselActualizado}, local1.eventos(t))
	assert.Empty(t, local2.eventos(t), "otro local no debe recibir el push")
	assert.Empty(t, monitor.eventos(t), "el monitor no debe recibir pushes privados del local")
}

// Un fallo de envío en una conexión no debe impedir la entrega al resto.
func TestBroadcast_FalloParcialNoAbortaLaEntrega(t *testing.T) {
	r := newTestRegistry()
	rota := &fakeConn{failSend: true}
	sana := &fakeConn{}
	r.Connect(rota, 3)
	r.Connect(sana, 3)

	assert.NotPanics(t, func() {
		r.Broadcast(EventoProductoEliminado, map[string]int{"id": 1}, 3)
	})
	assert.Equal(t, []string{EventoProductoEliminado}, sana.eventos(t))
	// La entrada rota sigue registrada: la poda la hace Disconnect.
	assert.Equal(t, 2, r.Count())
}

func TestDisconnect_Idempotente(t *testing.T) {
	r := newTestRegistry()
	conn := &fakeConn{}
	r.Connect(conn, 5)
	require.Equal(t, 1, r.Count())

	r.Disconnect(conn)
	assert.Equal(t, 0, r.Count())

	// Segunda llamada: no-op, sin pánico ni efectos duplicados.
	assert.NotPanics(t, func() { r.Disconnect(conn) })
	assert.Equal(t, 0, r.Count())
}

func TestSetLocal_ReasignaConexion(t *testing.T) {
	r := newTestRegistry()
	conn := &fakeConn{}
	wsID := r.Connect(conn, 0)

	require.True(t, r.SetLocal(wsID, 9))
	r.BroadcastToLocal(9, EventoCategoriaActualizada, nil)
	assert.Equal(t, []string{EventoCategoriaActualizada}, conn.eventos(t))

	assert.False(t, r.SetLocal("ws-inexistente", 9))
}

// Connect/Disconnect/Broadcast concurrentes no deben corromper la lista.
func TestRegistry_AccesoConcurrente(t *testing.T) {
	r := newTestRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			conn := &fakeConn{}
			r.Connect(conn, int64(n%3+1))
			r.Broadcast(EventoProductoActualizado, nil, int64(n%3+1))
			r.Disconnect(conn)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, r.Count())
}
