package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/models"
	"github.com/archerylive/shootlive/internal/notifier"
	"github.com/archerylive/shootlive/internal/services/endtracking"
	shootService "github.com/archerylive/shootlive/internal/services/shoot"
	"github.com/archerylive/shootlive/internal/shootcode"
)

// Config holds configuration for the HTTP API handler
type Config struct {
	// ShootService is the only mutation path for shoots
	ShootService shootService.Service

	// EndTracking drives END_COMPLETE cadence events
	EndTracking endtracking.Service

	// Hub receives the websocket subscriptions opened by /live
	Hub *notifier.Hub

	// Logger for transport-level failures; defaults to a no-op logger
	Logger *zap.Logger
}

// Handler is the thin transport adapter in front of the shoot service: it
// decodes requests, delegates, and encodes results. It holds no state of its
// own.
type Handler struct {
	shootService shootService.Service
	endTracking  endtracking.Service
	hub          *notifier.Hub
	logger       *zap.Logger
	upgrader     websocket.Upgrader
}

// New creates a new HTTP API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.ShootService == nil {
		return nil, errors.New("shoot service cannot be nil")
	}
	if cfg.EndTracking == nil {
		return nil, errors.New("end tracking service cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		shootService: cfg.ShootService,
		endTracking:  cfg.EndTracking,
		hub:          cfg.Hub,
		logger:       logger,
		upgrader: websocket.Upgrader{
			// Scoring clients are served from arbitrary PWA origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

// Routes returns the router for the live shoot API
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.health)

	r.Route("/api/shoots", func(r chi.Router) {
		r.Post("/", h.createShoot)

		r.Route("/{code}", func(r chi.Router) {
			r.Use(h.requireValidCode)
			r.Get("/", h.getShoot)
			r.Post("/join", h.joinShoot)
			r.Put("/score", h.updateScore)
			r.Post("/finish", h.finishShoot)
			r.Post("/leave", h.leaveShoot)
			r.Post("/end", h.trackEnd)
			r.Get("/live", h.live)
		})
	})

	return r
}

// requireValidCode rejects malformed join codes before they reach the service
func (h *Handler) requireValidCode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shootcode.IsValid(chi.URLParam(r, "code")) {
			h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "shoot code must be exactly 4 digits"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createShoot(w http.ResponseWriter, r *http.Request) {
	var req createShootRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.CreatorName == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "creatorName is required"})
		return
	}

	output, err := h.shootService.CreateShoot(r.Context(), &shootService.CreateShootInput{
		CreatorName: req.CreatorName,
		Title:       req.Title,
	})
	if err != nil {
		h.respondInternalError(w, "create shoot", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, createShootResponse{
		Code:  output.Code,
		Shoot: output.Shoot,
	})
}

func (h *Handler) getShoot(w http.ResponseWriter, r *http.Request) {
	output, err := h.shootService.GetShoot(r.Context(), &shootService.GetShootInput{
		Code: chi.URLParam(r, "code"),
	})
	if err != nil {
		h.respondInternalError(w, "get shoot", err)
		return
	}

	if output.Shoot == nil {
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: "shoot not found"})
		return
	}

	h.respondJSON(w, http.StatusOK, output.Shoot)
}

func (h *Handler) joinShoot(w http.ResponseWriter, r *http.Request) {
	var req joinShootRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.ArcherName == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "archerName is required"})
		return
	}

	output, err := h.shootService.JoinShoot(r.Context(), &shootService.JoinShootInput{
		Code:       chi.URLParam(r, "code"),
		ArcherName: req.ArcherName,
		RoundName:  req.RoundName,
	})
	if err != nil {
		h.respondInternalError(w, "join shoot", err)
		return
	}

	h.respondResult(w, output.Success, output.Shoot)
}

func (h *Handler) updateScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.ArcherName == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "archerName is required"})
		return
	}

	output, err := h.shootService.UpdateScore(r.Context(), &shootService.UpdateScoreInput{
		Code:           chi.URLParam(r, "code"),
		ArcherName:     req.ArcherName,
		TotalScore:     req.TotalScore,
		RoundName:      req.RoundName,
		ArrowsShot:     req.ArrowsShot,
		Classification: req.Classification,
		Scores:         req.Scores,
	})
	if err != nil {
		h.respondInternalError(w, "update score", err)
		return
	}

	h.respondResult(w, output.Success, output.Shoot)
}

func (h *Handler) finishShoot(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.ArcherName == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "archerName is required"})
		return
	}

	output, err := h.shootService.FinishShoot(r.Context(), &shootService.FinishShootInput{
		Code:           chi.URLParam(r, "code"),
		ArcherName:     req.ArcherName,
		TotalScore:     req.TotalScore,
		RoundName:      req.RoundName,
		ArrowsShot:     req.ArrowsShot,
		Classification: req.Classification,
		Scores:         req.Scores,
	})
	if err != nil {
		h.respondInternalError(w, "finish shoot", err)
		return
	}

	h.respondResult(w, output.Success, output.Shoot)
}

func (h *Handler) leaveShoot(w http.ResponseWriter, r *http.Request) {
	var req leaveShootRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.ArcherName == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "archerName is required"})
		return
	}

	output, err := h.shootService.LeaveShoot(r.Context(), &shootService.LeaveShootInput{
		Code:       chi.URLParam(r, "code"),
		ArcherName: req.ArcherName,
	})
	if err != nil {
		h.respondInternalError(w, "leave shoot", err)
		return
	}

	h.respondResult(w, output.Success, nil)
}

func (h *Handler) trackEnd(w http.ResponseWriter, r *http.Request) {
	var req trackEndRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.ArcherName == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "archerName is required"})
		return
	}

	output, err := h.endTracking.TrackEndCompletion(r.Context(), &endtracking.TrackEndCompletionInput{
		Code:       chi.URLParam(r, "code"),
		ArcherName: req.ArcherName,
	})
	if err != nil {
		h.respondInternalError(w, "track end", err)
		return
	}

	h.respondJSON(w, http.StatusOK, trackEndResponse{
		EndsCompleted: output.EndsCompleted,
		Notified:      output.Notified,
	})
}

// live upgrades the connection and subscribes it to the shoot's notification
// stream until the client goes away
func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	exists, err := h.shootService.ShootExists(r.Context(), &shootService.ShootExistsInput{Code: code})
	if err != nil {
		h.respondInternalError(w, "check shoot", err)
		return
	}
	if !exists {
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: "shoot not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response
		h.logger.Warn("websocket upgrade failed",
			zap.String("code", code),
			zap.Error(err))
		return
	}

	h.hub.Subscribe(code, conn)
	go h.drain(code, conn)
}

// drain consumes client frames until the connection dies, then detaches it
// from the hub
func (h *Handler) drain(code string, conn *websocket.Conn) {
	defer func() {
		h.hub.Unsubscribe(code, conn)
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// respondResult maps a service-level {success, shoot} result onto the wire:
// a NotFound/InvalidOperation outcome is a 404 with success=false, never an
// error payload
func (h *Handler) respondResult(w http.ResponseWriter, success bool, shoot *models.Shoot) {
	status := http.StatusOK
	if !success {
		status = http.StatusNotFound
	}

	h.respondJSON(w, status, shootResponse{
		Success: success,
		Shoot:   shoot,
	})
}

func (h *Handler) respondInternalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
