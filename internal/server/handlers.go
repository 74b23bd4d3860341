package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"
)

var started = time.Now()

// handleHealth handles health check requests. The database ping is
// included because a carteira instance without its sqlite file is not
// meaningfully healthy even if the process is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := "healthy"
	dbStatus := "ok"
	status := http.StatusOK
	if err := s.db.Conn().Ping(); err != nil {
		health = "degraded"
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":   health,
		"version":  "1.0.0",
		"service":  "carteira",
		"database": dbStatus,
	}

	s.writeJSON(w, status, response)
}

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := map[string]interface{}{
		"status":         "running",
		"uptime_seconds": int64(time.Since(started).Seconds()),
		"memory": map[string]interface{}{
			"alloc_mb":       m.Alloc / 1024 / 1024,
			"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
			"sys_mb":         m.Sys / 1024 / 1024,
			"num_gc":         m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
