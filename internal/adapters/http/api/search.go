package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/domain/query"
	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

// searchRequest mirrors the query parameters of the search endpoint.
type searchRequest struct {
	Gender      string `query:"gender" validate:"omitempty,oneof=M F"`
	Nationality string `query:"nationality" validate:"max=64"`
	Category    string `query:"category" validate:"max=16"`
	Query       string `query:"q" validate:"max=128"`
	Page        int    `query:"page" validate:"min=1"`
	PageSize    *int   `query:"page_size" validate:"omitempty,min=1"`
}

func parseSearchRequest(q url.Values) (searchRequest, error) {
	req := searchRequest{
		Gender:      q.Get("gender"),
		Nationality: q.Get("nationality"),
		Category:    q.Get("category"),
		Query:       q.Get("q"),
		Page:        1,
	}
	var err error
	if v := q.Get("page"); v != "" {
		if req.Page, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("%w: page must be an integer", ErrBadRequest)
		}
	}
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: page_size must be an integer", ErrBadRequest)
		}
		req.PageSize = &size
	}
	return req, nil
}

func (s searchRequest) params() service.SearchParams {
	p := service.SearchParams{
		Selection: query.Selection{
			Gender:      types.Gender(s.Gender),
			Nationality: s.Nationality,
			Category:    s.Category,
		},
		Query: s.Query,
		Page:  s.Page,
	}
	if s.PageSize != nil {
		p.PageSize = *s.PageSize
	}
	return p
}

// SearchHandler serves filtered, paginated results.
type SearchHandler struct {
	deps        SearchDependencies
	maxPageSize int
	validate    *validator.Validate
	logger      logger.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies, maxPageSize int, log logger.Logger) *SearchHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	return &SearchHandler{
		deps:        deps,
		maxPageSize: maxPageSize,
		validate:    v,
		logger:      log,
	}
}

// HandleSearch handles GET /api/runners/{distance}/search requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	req, err := parseSearchRequest(r.URL.Query())
	if err == nil {
		err = h.check(req)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	page, err := h.deps.Search(r.Context(), r.PathValue("distance"), req.params())
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *SearchHandler) check(req searchRequest) error {
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrBadRequest, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if h.maxPageSize > 0 && req.PageSize != nil && *req.PageSize > h.maxPageSize {
		return fmt.Errorf("%w: page_size exceeds %d", ErrBadRequest, h.maxPageSize)
	}
	return nil
}
