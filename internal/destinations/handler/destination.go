package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"trailhead/internal/destinations/editor"
	"trailhead/internal/destinations/repository"
	"trailhead/internal/destinations/service"
	httputil "trailhead/pkg/http"
	"trailhead/pkg/logger"
	"trailhead/pkg/model"
)

type DestinationHandler struct {
	service service.DestinationService
	log     *logger.Logger
}

func NewDestinationHandler(service service.DestinationService, log *logger.Logger) *DestinationHandler {
	return &DestinationHandler{
		service: service,
		log:     log,
	}
}

// DestinationPage is the public read shape: the stored document plus the
// display ordering for things to do, which is computed per request and
// never persisted.
type DestinationPage struct {
	*model.Destination
	ThingsToDoOrdered []model.Activity `json:"things_to_do_ordered"`
}

func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var d model.Destination
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &d); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, d); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *DestinationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetByID", "operation", "WriteJSON", "error", err)
		}
		return
	}

	d, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, d); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DestinationHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := strings.TrimSpace(ps.ByName("slug"))
	if slug == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Slug parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetBySlug", "operation", "WriteJSON", "error", err)
		}
		return
	}

	d, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetBySlug", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	page := DestinationPage{
		Destination:       d,
		ThingsToDoOrdered: editor.SortedActivities(d.ThingsToDo),
	}

	if err := httputil.WriteSuccess(w, page); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBySlug", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DestinationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	query := r.URL.Query()
	filter := repository.ListFilter{
		Category:     strings.TrimSpace(query.Get("category")),
		FeaturedOnly: query.Get("featured") == "true",
	}

	destinations, totalCount, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, destinations, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Update", "operation", "WriteJSON", "error", err)
		}
		return
	}

	var updates model.DestinationUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Delete", "operation", "WriteJSON", "error", err)
		}
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

type generateRequest struct {
	Name string `json:"name"`
}

func (h *DestinationHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Generate", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	draft, err := h.service.GenerateDraft(r.Context(), req.Name)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Generate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, draft); err != nil {
		h.log.Error("failed to write success response", "handler", "Generate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DestinationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/destinations", h.Create)
	router.GET("/api/v1/destinations", h.GetAll)
	router.POST("/api/v1/destinations/generate", h.Generate)
	router.GET("/api/v1/destinations/id/:id", h.GetByID)
	router.PATCH("/api/v1/destinations/id/:id", h.Update)
	router.DELETE("/api/v1/destinations/id/:id", h.Delete)
	router.GET("/api/v1/destinations/slug/:slug", h.GetBySlug)
}
