package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var ErrNotListening = errors.New("http: server is not listening")

// Server owns the listening socket and the registry of accepted
// connections. Start and Stop may be called repeatedly; each Start fully
// stops the previous listener first.
type Server struct {
	Name string

	// Router supplies the default dispatch hook. Set Dispatch to bypass it.
	Router   *Router
	Dispatch DispatchFunc

	Parser     RequestParser
	Dispatcher Dispatcher
	Logger     *slog.Logger

	mu       sync.Mutex // guards listener
	listener net.Listener
	registry *ConnectionRegistry

	acceptedConns metric.Int64Counter
	openConns     metric.Int64UpDownCounter
	responses     metric.Int64Counter
}

func NewServer(name string) *Server {
	meter := otel.Meter("github.com/alexsup/swifter/http")
	acceptedConns, _ := meter.Int64Counter("http.server.connections.accepted",
		metric.WithDescription("Connections accepted by the listener"))
	openConns, _ := meter.Int64UpDownCounter("http.server.connections.open",
		metric.WithDescription("Connections currently registered"))
	responses, _ := meter.Int64Counter("http.server.responses",
		metric.WithDescription("Responses written"))

	return &Server{
		Name:       name,
		Router:     NewRouter(),
		Parser:     DefaultParser{},
		Dispatcher: GoDispatcher{},
		Logger:     otelslog.NewLogger(name),
		registry:   NewConnectionRegistry(),

		acceptedConns: acceptedConns,
		openConns:     openConns,
		responses:     responses,
	}
}

// Start stops any previous listener, binds port and runs the accept loop as
// a dispatcher task. forceIPv4 binds an IPv4-only socket instead of the
// dual-stack default. Port 0 picks an ephemeral port, see Port.
func (s *Server) Start(port uint16, forceIPv4 bool) error {
	s.Stop()

	network := "tcp"
	if forceIPv4 {
		network = "tcp4"
	}
	listener, err := net.Listen(network, fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("http: listen: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.Dispatcher.Run(func() {
		s.acceptLoop(listener)
	})
	return nil
}

// Stop closes the listener, then closes every registered connection and
// clears the registry. Idempotent, callable before any Start.
func (s *Server) Stop() {
	s.mu.Lock()
	listener := s.listener
	s.listener = nil
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}
	s.registry.CloseAll()
}

// Port returns the port the server is bound to.
func (s *Server) Port() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return 0, ErrNotListening
	}
	addr, ok := s.listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, ErrNotListening
	}
	return addr.Port, nil
}

// ListenAndServe binds addr and blocks, serving until the listener fails or
// Stop is called from elsewhere.
func (s *Server) ListenAndServe(addr string) error {
	s.Stop()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http: listen: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.acceptLoop(listener)
	return nil
}

func (s *Server) acceptLoop(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			// Listener closed or broken: tear down, but only if a newer
			// Start has not replaced it already.
			s.stopIfCurrent(listener)
			return
		}

		// Stop may have completed between Accept returning and here, in
		// which case CloseAll already ran without this conn. Register only
		// while this listener is still the current one.
		s.mu.Lock()
		current := s.listener == listener
		var id uuid.UUID
		if current {
			id = s.registry.Add(conn)
		}
		s.mu.Unlock()
		if !current {
			conn.Close()
			return
		}

		s.acceptedConns.Add(context.Background(), 1)
		s.openConns.Add(context.Background(), 1)
		s.Logger.Debug("connection accepted",
			slog.String("conn_id", id.String()),
			slog.String("remote_addr", conn.RemoteAddr().String()))

		s.Dispatcher.Run(func() {
			s.serveConn(conn, id)
		})
	}
}

func (s *Server) stopIfCurrent(listener net.Listener) {
	s.mu.Lock()
	current := s.listener == listener
	if current {
		s.listener = nil
	}
	s.mu.Unlock()

	if current {
		listener.Close()
		s.registry.CloseAll()
	}
}

func (s *Server) dispatch(req *Request) (map[string]string, Handler) {
	if s.Dispatch != nil {
		return s.Dispatch(req)
	}
	if s.Router != nil {
		return s.Router.Dispatch(req)
	}
	return defaultDispatch(req)
}
