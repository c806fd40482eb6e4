package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Response состояние сервиса
type Response struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Storage     string `json:"storage"`
	StorageUp   bool   `json:"storageUp"`
}

type Handler struct {
	storage     StorageChecker
	storageKind string
	environment string
	logger      Logger
}

func NewHandler(storage StorageChecker, storageKind, environment string, logger Logger) *Handler {
	return &Handler{
		storage:     storage,
		storageKind: storageKind,
		environment: environment,
		logger:      logger,
	}
}

// Handle GET /health
// Всегда 200: сервис отвечает, даже если хранилище недоступно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	up := true
	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("GET /health - Storage ping failed: %v", err)
		up = false
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
		Storage:     h.storageKind,
		StorageUp:   up,
	})
}
