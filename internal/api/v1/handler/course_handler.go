package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

// CourseHandler handles catalog search, typeahead sessions and the passive
// header counts
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/v1/courses", authMw(http.HandlerFunc(h.searchCourses)))
	mux.Handle("/v1/search-sessions", authMw(http.HandlerFunc(h.openSearchSession)))
	mux.Handle("/v1/search-sessions/", authMw(http.HandlerFunc(h.handleSearchSession)))
	mux.Handle("/v1/notifications/count", authMw(http.HandlerFunc(h.notificationCount)))
	mux.Handle("/v1/cart/count", authMw(http.HandlerFunc(h.cartCount)))
}

// searchCourses godoc
// @Summary Search courses
// @Description Runs a filtered, paginated course search.
// @Tags courses
// @Produce json
// @Param keyword query string false "Keyword"
// @Param categoryId query int false "Category ID"
// @Param level query string false "Level"
// @Param isFree query bool false "Free courses only"
// @Param isPaid query bool false "Paid courses only"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sortBy query string false "Sort order (popular, rating, price_low, price_high)"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} model.CoursePage
// @Failure 502 {string} string "Search failed"
// @Router /v1/courses [get]
func (h *CourseHandler) searchCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	page, err := h.courseService.Search(r.Context(), filtersFromQuery(r))
	if err != nil {
		writeServiceError(w, "Search failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// openSearchSession godoc
// @Summary Open a typeahead search session
// @Description Keystrokes typed into the session are debounced server-side;
// @Description only the last burst reaches the catalog search.
// @Tags courses
// @Produce json
// @Success 201 {object} dto.SearchSessionResponseDTO
// @Router /v1/search-sessions [post]
func (h *CourseHandler) openSearchSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	id := h.courseService.OpenSearchSession()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.SearchSessionResponseDTO{SessionID: id})
}

func (h *CourseHandler) handleSearchSession(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/search-sessions/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	sessionID := parts[0]
	if sessionID == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "keystrokes" && r.Method == http.MethodPost:
		h.typeKeyword(w, r, sessionID)
	case len(parts) == 1 && r.Method == http.MethodPost:
		h.typeKeyword(w, r, sessionID)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.sessionResult(w, r, sessionID)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.closeSearchSession(w, r, sessionID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// typeKeyword godoc
// @Summary Record a typeahead keystroke
// @Tags courses
// @Accept json
// @Param sessionId path string true "Session ID"
// @Param keystroke body dto.TypeaheadRequestDTO true "Search filters as typed"
// @Success 202 {string} string "Accepted"
// @Failure 404 {string} string "Search session not found"
// @Router /v1/search-sessions/{sessionId}/keystrokes [post]
func (h *CourseHandler) typeKeyword(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req dto.TypeaheadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	filters := model.CourseFilters{
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		Level:      req.Level,
		IsFree:     req.IsFree,
		IsPaid:     req.IsPaid,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		SortBy:     req.SortBy,
		Page:       req.Page,
		Size:       req.Size,
	}
	if err := h.courseService.TypeKeyword(r.Context(), sessionID, filters); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			http.Error(w, "Search session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to record keystroke: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// sessionResult godoc
// @Summary Get the latest typeahead result
// @Tags courses
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResultResponseDTO
// @Failure 404 {string} string "Search session not found"
// @Failure 502 {string} string "Search failed"
// @Router /v1/search-sessions/{sessionId} [get]
func (h *CourseHandler) sessionResult(w http.ResponseWriter, r *http.Request, sessionID string) {
	page, pending, err := h.courseService.SessionResult(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			http.Error(w, "Search session not found", http.StatusNotFound)
			return
		}
		writeServiceError(w, "Search failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.SessionResultResponseDTO{Pending: pending, Result: page})
}

// closeSearchSession godoc
// @Summary Close a typeahead search session
// @Tags courses
// @Param sessionId path string true "Session ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Search session not found"
// @Router /v1/search-sessions/{sessionId} [delete]
func (h *CourseHandler) closeSearchSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.courseService.CloseSearchSession(sessionID); err != nil {
		http.Error(w, "Search session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// notificationCount godoc
// @Summary Unread notification count
// @Description Passive header read; unauthorized sessions read as zero.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CountResponseDTO
// @Router /v1/notifications/count [get]
func (h *CourseHandler) notificationCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	count, err := h.courseService.UnreadNotificationCount(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to fetch notification count", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CountResponseDTO{Count: count})
}

// cartCount godoc
// @Summary Cart item count
// @Description Passive header read; unauthorized sessions read as zero.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CountResponseDTO
// @Router /v1/cart/count [get]
func (h *CourseHandler) cartCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	count, err := h.courseService.CartItemCount(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to fetch cart count", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CountResponseDTO{Count: count})
}

func filtersFromQuery(r *http.Request) model.CourseFilters {
	q := r.URL.Query()
	f := model.CourseFilters{
		Keyword: q.Get("keyword"),
		Level:   q.Get("level"),
		SortBy:  q.Get("sortBy"),
	}
	if v := q.Get("categoryId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = id
		}
	}
	if v := q.Get("isFree"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsFree = &b
		}
	}
	if v := q.Get("isPaid"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsPaid = &b
		}
	}
	if v := q.Get("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 0 {
			f.Page = p
		}
	}
	if v := q.Get("size"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			f.Size = s
		}
	}
	return f
}
