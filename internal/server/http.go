package server

import (
	"encoding/json"
	"net/http"

	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
)

// Handler routes the debug endpoints:
//
//	GET /sensors         last frame of every sensor
//	GET /sensors/{name}  last frame of one sensor
//	GET /ws              frame stream, one Message per Broadcast
//	GET /healthz         server statistics, never authenticated
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /sensors", s.authenticate(http.HandlerFunc(s.handleSensors)))
	mux.Handle("GET /sensors/{name}", s.authenticate(http.HandlerFunc(s.handleSensor)))
	mux.Handle("GET /ws", s.authenticate(http.HandlerFunc(s.handleWebSocket)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleSensors(w http.ResponseWriter, _ *http.Request) {
	frames := s.source.Frames()
	if frames == nil {
		frames = []sensor.Frame{}
	}
	s.writeJSON(w, http.StatusOK, frames)
}

func (s *Server) handleSensor(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	for _, f := range s.source.Frames() {
		if f.Name == name {
			s.writeJSON(w, http.StatusOK, f)
			return
		}
	}
	http.Error(w, ErrSensorNotFound.Error(), http.StatusNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.GetStats())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", log.Error(err))
	}
}
