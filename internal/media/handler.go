package media

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "trailhead/pkg/http"
	"trailhead/pkg/logger"
)

type Handler struct {
	service  Service
	mediaDir string
	baseURL  string
	log      *logger.Logger
}

func NewHandler(service Service, mediaDir, baseURL string, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		mediaDir: mediaDir,
		baseURL:  baseURL,
		log:      log,
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "A 'file' form field is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Upload", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	defer file.Close()

	stored, err := h.service.Store(r.Context(), header.Filename, file)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upload", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, stored); err != nil {
		h.log.Error("failed to write created response", "handler", "Upload", "operation", "WriteCreated", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/media", h.Upload)
	router.ServeFiles(h.baseURL+"/*filepath", http.Dir(h.mediaDir))
}
