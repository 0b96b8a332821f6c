package handling

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"caviste_server/documents"
	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ParseOrderFilter parses the admin order listing query parameters
func ParseOrderFilter(r *http.Request) (structs.OrderFilter, error) {
	query := r.URL.Query()
	filter := structs.OrderFilter{}

	// Early return if no query params
	if len(query) == 0 {
		return filter, nil
	}

	var err error
	if page := query.Get("page"); page != "" {
		if filter.Page, err = strconv.Atoi(page); err != nil {
			return filter, lib.NewValidationError("page", "page must be a number")
		}
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if filter.PageSize, err = strconv.Atoi(pageSize); err != nil {
			return filter, lib.NewValidationError("page_size", "page_size must be a number")
		}
	}

	if status := strings.ToLower(strings.TrimSpace(query.Get("status"))); status != "" {
		s := tables.OrderStatus(status)
		if !s.IsValid() {
			return filter, lib.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
		}
		filter.Status = &s
	}

	return filter, nil
}

// ParseUUIDParam reads a UUID path parameter
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, lib.NewValidationError(name, name+" must be a valid UUID")
	}
	return id, nil
}

// WriteDocument streams a rendered PDF as a download
func WriteDocument(w http.ResponseWriter, doc *documents.RenderedDocument) error {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(doc.Content)
	return err
}
