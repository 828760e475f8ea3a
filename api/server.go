package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pokioni/roomserver/config"
	"github.com/pokioni/roomserver/room"
	"github.com/pokioni/roomserver/transport/websocket"
)

// Server is the HTTP surface around the coordination core: room creation,
// config passthrough, static assets, and the WebSocket upgrade endpoint.
type Server struct {
	store  *room.Store
	hub    *websocket.Hub
	cfg    *config.Config
	logger *zap.SugaredLogger
	router *mux.Router
}

// NewServer creates the HTTP server over the given store and hub.
func NewServer(store *room.Store, hub *websocket.Hub, cfg *config.Config, logger *zap.SugaredLogger) *Server {
	s := &Server{
		store:  store,
		hub:    hub,
		cfg:    cfg,
		logger: logger,
		router: mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/create-room", s.handleCreateRoom).Methods("POST")
	s.router.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	s.router.HandleFunc("/config.json", s.handleConfig).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	s.router.HandleFunc("/ws", s.hub.ServeWS)

	// Browser client assets.
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleCreateRoom allocates a fresh empty room and returns its identifier.
// The room list is persisted before the response is written.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	roomID := s.store.Create()
	s.logger.Infow("room created", "room_id", roomID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"roomId":  roomID,
	})
}

// handleListRooms returns the current room list in creation order, in the
// same shape as the durable snapshot.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.store.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rooms),
		"rooms": rooms,
	})
}

// handleConfig serves the raw config file so browser clients can discover
// the server address.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	data, err := s.cfg.Raw()
	if err != nil {
		http.Error(w, "failed to read config", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
