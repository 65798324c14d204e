package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/fourinarow-backend/internal/pkg"
	"github.com/rocketscienceinc/fourinarow-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	CreateGame(playerID, mode string) error
	JoinGame(playerID, roomID, mode string) error
	Play(playerID, roomID string, column int) error
	LeaveGame(playerID, roomID string) error
	Disconnect(playerID string)
}

type participantMetrics interface {
	ParticipantConnected()
	ParticipantDisconnected()
}

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	manager  gameManager
	metrics  participantMetrics
	upgrader websocket.Upgrader

	handlers map[string]func(playerID string, payload json.RawMessage) error
}

// New builds the websocket endpoint. An empty allowedOrigins list accepts any origin.
func New(logger *slog.Logger, hub *Hub, manager gameManager, metrics participantMetrics, allowedOrigins []string) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket_server"),
		hub:     hub,
		manager: manager,
		metrics: metrics,

		handlers: make(map[string]func(string, json.RawMessage) error),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}

			return slices.Contains(allowedOrigins, r.Header.Get("Origin"))
		},
	}

	server.handlers["createGame"] = server.handleCreateGame
	server.handlers["joinGame"] = server.handleJoinGame
	server.handlers["play"] = server.handlePlay
	server.handlers["leaveGame"] = server.handleLeaveGame

	return server
}

func (that *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", that.upgradeToWebSocket).Methods(http.MethodGet)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until it closes.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(pkg.GenerateParticipantID(), conn)
	log = log.With("playerID", c.id)

	that.hub.register(c)
	that.metrics.ParticipantConnected()

	go c.writePump()

	log.Info("WebSocket connection established", "clients", that.hub.Count())

	that.hub.Publish([]string{c.id}, usecase.Event{
		Action:  usecase.EventConnected,
		Payload: usecase.ConnectedPayload{PlayerID: c.id},
	})

	err = c.readPump(func(data []byte) {
		that.handleMessage(c.id, data)
	})
	if err != nil {
		log.Error("connection closed unexpectedly", "error", err)
	}

	that.hub.unregister(c)
	c.close()
	that.metrics.ParticipantDisconnected()
	that.manager.Disconnect(c.id)

	log.Info("WebSocket connection closed")
}

// handleMessage - dispatches one client message to its action handler.
func (that *Server) handleMessage(playerID string, data []byte) {
	log := that.logger.With("method", "handleMessage", "playerID", playerID)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		that.sendError(playerID, "invalid message")
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action", "action", message.Action)
		that.sendError(playerID, fmt.Sprintf("unknown action %q", message.Action))
		return
	}

	if err := handler(playerID, message.Payload); err != nil {
		log.Debug("action rejected", "action", message.Action, "error", err)
	}
}

func (that *Server) sendError(playerID, message string) {
	that.hub.Publish([]string{playerID}, usecase.Event{
		Action:  usecase.EventError,
		Payload: usecase.MessagePayload{Message: message},
	})
}
