package grievance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/transport"
	"github.com/frahmantamala/grievance-management/internal/uploads"
	"github.com/frahmantamala/grievance-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Store   *uploads.Store
}

func NewHandler(service *Service, store *uploads.Store) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Store:       store,
	}
}

func (h *Handler) CreateGrievance(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateGrievanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.Create(r.Context(), user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Grievance created successfully",
		"grievance": g,
	})
}

func (h *Handler) GetGrievances(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := pagination(r, 50)

	grievances, err := h.Service.List(user, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"grievances": grievances})
}

func (h *Handler) FilterGrievances(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var filters Filters
	q := r.URL.Query()
	filters.Status = q.Get("status")
	filters.Category = q.Get("category")
	filters.Priority = q.Get("priority")
	if v := q.Get("submitted_by"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.SubmittedBy = &id
		}
	}
	if v := q.Get("assigned_to"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.AssignedTo = &id
		}
	}

	limit, offset := pagination(r, 50)

	grievances, err := h.Service.ListFiltered(user, filters, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"grievances": grievances})
}

func (h *Handler) GetGrievance(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := grievanceID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	detail, err := h.Service.GetDetail(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateGrievance(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := grievanceID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	var dto UpdateGrievanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.Update(r.Context(), user, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Grievance updated successfully",
		"grievance": g,
	})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := grievanceID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.AddComment(user, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Comment added",
		"comment": c,
	})
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := grievanceID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	comments, err := h.Service.Comments(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := grievanceID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	if err := r.ParseMultipartForm(h.Store.MaxSize()); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "no file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.WriteError(w, http.StatusBadRequest, "no file selected")
		return
	}

	storedName, err := h.Store.Save(header.Filename, file)
	if err != nil {
		if err == uploads.ErrFileNotAllowed {
			h.HandleError(w, internal.NewValidationError("file type not allowed", internal.ErrCodeFileNotAllowed))
			return
		}
		h.Logger.Error("attachment save failed", "error", err, "grievance_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	a, err := h.Service.AddAttachment(user, id, header.Filename, storedName)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "File uploaded",
		"attachment": a,
	})
}

func (h *Handler) GetAttachments(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := grievanceID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grievance ID")
		return
	}

	attachments, err := h.Service.Attachments(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"attachments": attachments})
}

// DownloadAttachment serves a stored file by its stored name.
func (h *Handler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.Store.Path(filename)
	if err != nil {
		if err == uploads.ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "file not found")
			return
		}
		h.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	http.ServeFile(w, r, path)
}

// ServeImage serves uploaded images without authentication, restricted to
// image extensions.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if !uploads.IsImage(filename) {
		h.WriteError(w, http.StatusForbidden, "invalid file type")
		return
	}

	path, err := h.Store.Path(filename)
	if err != nil {
		if err == uploads.ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "image not found")
			return
		}
		h.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	http.ServeFile(w, r, path)
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.GetStatistics(user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func grievanceID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
