package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// DefaultHistoryLimit is the page size used when HistoryQuery.Limit is zero.
const DefaultHistoryLimit = 20

// HistoryAPI groups the translation history endpoints.
type HistoryAPI struct {
	c *Client
}

// List returns one page of history, newest first.
func (h *HistoryAPI) List(ctx context.Context, q models.HistoryQuery) ([]models.HistoryEntry, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(q.Offset))
	if q.SourceLang != "" {
		params.Set("source_lang", q.SourceLang)
	}
	if q.TargetLang != "" {
		params.Set("target_lang", q.TargetLang)
	}

	var entries []models.HistoryEntry
	if err := h.c.do(ctx, "/history?"+params.Encode(), request{method: http.MethodGet}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns a single history entry.
func (h *HistoryAPI) Get(ctx context.Context, id string) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	if err := h.c.do(ctx, "/history/"+url.PathEscape(id), request{method: http.MethodGet}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes a history entry. Whether the id still exists is the backend's call.
func (h *HistoryAPI) Delete(ctx context.Context, id string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := h.c.do(ctx, "/history/"+url.PathEscape(id), request{method: http.MethodDelete}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Clear removes every history entry.
func (h *HistoryAPI) Clear(ctx context.Context) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := h.c.do(ctx, "/history", request{method: http.MethodDelete}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Export formats accepted by Export.
const (
	ExportTXT      = "txt"
	ExportMarkdown = "md"
	ExportSRT      = "srt"
	ExportJSON     = "json"
)

// Export downloads one entry as a file in the given format. The body is
// returned as-is; an empty format means the backend default (txt).
func (h *HistoryAPI) Export(ctx context.Context, id, format string) ([]byte, error) {
	path := "/history/" + url.PathEscape(id) + "/export"
	if format != "" {
		path += "?format=" + url.QueryEscape(format)
	}
	return h.c.send(ctx, path, request{method: http.MethodGet})
}
