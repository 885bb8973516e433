package http

import (
	"net"
	"sync"

	"github.com/google/uuid"
)

// ConnectionRegistry tracks the sockets whose lifecycle the server owns.
// It is the only state shared between the accept task and the connection
// tasks; every access happens under its lock. Each socket is tagged with an
// id used in log output.
type ConnectionRegistry struct {
	mu    sync.Mutex
	conns map[net.Conn]uuid.UUID
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[net.Conn]uuid.UUID),
	}
}

// Add registers conn and returns its id. Registering the same conn twice
// keeps the original id.
func (r *ConnectionRegistry) Add(conn net.Conn) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, found := r.conns[conn]; found {
		return id
	}
	id := uuid.New()
	r.conns[conn] = id
	return id
}

// Remove deregisters conn. Removing an unknown conn is a no-op.
func (r *ConnectionRegistry) Remove(conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, conn)
}

// Len returns the number of registered connections.
func (r *ConnectionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}

// CloseAll closes every registered socket and clears the registry. Handlers
// blocked on those sockets fail their next read or write and exit through
// their error path.
func (r *ConnectionRegistry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for conn := range r.conns {
		conn.Close()
	}
	clear(r.conns)
}
