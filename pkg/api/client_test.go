package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// capture records the last request a test server received.
type capture struct {
	method string
	path   string
	query  string
	header http.Header
	form   map[string][]string
	files  map[string]string // field -> filename
	body   string
}

// newServer answers every request with status and body, recording the request.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *capture) {
	t.Helper()
	got := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.header = r.Header.Clone()
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			got.form = r.MultipartForm.Value
			got.files = make(map[string]string)
			for name, headers := range r.MultipartForm.File {
				got.files[name] = headers[0].Filename
			}
		} else {
			raw, _ := io.ReadAll(r.Body)
			got.body = string(raw)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestOriginOf(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "http://localhost:8001/api", want: "http://localhost:8001"},
		{base: "https://ytt.example.com/api", want: "https://ytt.example.com"},
		{base: "/api", want: ""},
		{base: "https://ytt.example.com/v2", want: "https://ytt.example.com"},
		{base: "http://localhost:8001/myapi", want: "http://localhost:8001"},
		{base: "http://localhost:8001/proxy/api", want: "http://localhost:8001/proxy"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			assert.Equal(t, tt.want, originOf(tt.base))
		})
	}
}

func TestDo_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
		wantIs      error
	}{
		{name: "body becomes message", status: http.StatusNotFound, body: `{"detail":"Translation not found"}`, wantStatus: 404, wantMessage: `{"detail":"Translation not found"}`},
		{name: "empty body", status: http.StatusInternalServerError, body: "", wantStatus: 500, wantMessage: "API error: 500"},
		{name: "plain text body", status: http.StatusBadGateway, body: "upstream down", wantStatus: 502, wantMessage: "upstream down"},
		{name: "invalid json on success", status: http.StatusOK, body: "<html>", wantIs: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)
			c := New(srv.URL + "/api")

			_, err := c.Version(context.Background())
			require.Error(t, err)

			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
				return
			}
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Error())
			assert.True(t, IsStatus(err, tt.wantStatus))
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL + "/api").Version(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestDo_CanceledContext(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL+"/api").Version(ctx)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAPIError_Detail(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "string detail", message: `{"detail":"Invalid YouTube URL"}`, want: "Invalid YouTube URL"},
		{name: "list detail", message: `{"detail":[{"loc":["query","limit"]}]}`, want: `[{"loc":["query","limit"]}]`},
		{name: "not json", message: "API error: 500", want: "API error: 500"},
		{name: "no detail key", message: `{"error":"x"}`, want: `{"error":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&APIError{Message: tt.message}).Detail())
		})
	}
}

func TestTranslate_FormFields(t *testing.T) {
	tests := []struct {
		name      string
		req       models.TranslationRequest
		wantForm  map[string][]string
		wantFiles map[string]string
	}{
		{
			name: "text only",
			req:  models.TranslationRequest{Text: "Bonjour", SourceLang: "fr", TargetLang: "en"},
			wantForm: map[string][]string{
				"text": {"Bonjour"}, "source_lang": {"fr"}, "target_lang": {"en"},
			},
			wantFiles: map[string]string{},
		},
		{
			name: "all optional fields",
			req: models.TranslationRequest{
				Text: "Bonjour", SourceLang: "auto", TargetLang: "en", Provider: "deepl", EntryID: "e1",
				File: &models.FileUpload{Filename: "notes.txt", Content: strings.NewReader("Salut")},
			},
			wantForm: map[string][]string{
				"text": {"Bonjour"}, "source_lang": {"auto"}, "target_lang": {"en"},
				"provider": {"deepl"}, "entry_id": {"e1"},
			},
			wantFiles: map[string]string{"file": "notes.txt"},
		},
		{
			name: "file without text",
			req: models.TranslationRequest{
				SourceLang: "fr", TargetLang: "en",
				File: &models.FileUpload{Filename: "clip.srt", Content: strings.NewReader("1")},
			},
			wantForm:  map[string][]string{"source_lang": {"fr"}, "target_lang": {"en"}},
			wantFiles: map[string]string{"file": "clip.srt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newServer(t, http.StatusOK, `{"original_text":"Bonjour","translated_text":"Hello","source_lang":"fr","target_lang":"en","provider":"libretranslate"}`)

			resp, err := New(srv.URL+"/api").Translation.Translate(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, "Hello", resp.TranslatedText)

			assert.Equal(t, http.MethodPost, got.method)
			assert.Equal(t, "/api/translate", got.path)
			assert.Equal(t, tt.wantForm, got.form)
			assert.Equal(t, tt.wantFiles, got.files)
		})
	}
}

func TestHistoryList_Query(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `[]`)
	c := New(srv.URL + "/api")

	entries, err := c.History.List(context.Background(), models.HistoryQuery{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, "limit=20&offset=0", got.query)

	_, err = c.History.List(context.Background(), models.HistoryQuery{Limit: 5, Offset: 10, TargetLang: "de"})
	require.NoError(t, err)
	assert.Equal(t, "limit=5&offset=10&target_lang=de", got.query)
}

func TestHistoryGet_EscapesID(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"id":"a/b"}`)

	_, err := New(srv.URL+"/api").History.Get(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/history/a/b", got.path) // decoded by the server
}

func TestSettingsUpdate_OmitsUnsetFields(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"theme":"g100"}`)
	theme := models.ThemeG100

	s, err := New(srv.URL+"/api").Settings.Update(context.Background(), models.SettingsUpdate{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeG100, s.Theme)
	assert.Equal(t, http.MethodPut, got.method)
	assert.JSONEq(t, `{"theme":"g100"}`, got.body)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantHealthy bool
		wantErr     error
	}{
		{name: "healthy", status: http.StatusOK, body: `{"status":"healthy","service":"ytt-backend"}`, wantHealthy: true},
		{name: "unhealthy 503 does not fail", status: http.StatusServiceUnavailable, body: `{"status":"unhealthy"}`},
		{name: "degraded 200", status: http.StatusOK, body: `{"status":"degraded"}`},
		{name: "garbage body", status: http.StatusOK, body: "ok", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newServer(t, tt.status, tt.body)

			h, err := New(srv.URL+"/api").Health(context.Background())
			assert.Equal(t, "/health", got.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, h.StatusCode)
			assert.Equal(t, tt.wantHealthy, h.Healthy())
		})
	}
}

func TestFetchTranscript_TranslationErrorIsData(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"video_id":"dQw4w9WgXcQ","source_transcript_raw":"Hello","translation_error":"Translation failed: timeout"}`)
	merge := false

	resp, err := New(srv.URL+"/api").YouTube.FetchTranscript(context.Background(), models.YouTubeRequest{
		URL: "https://youtu.be/dQw4w9WgXcQ", SourceLang: "en", TargetLang: "de", MergeLines: &merge,
	})
	require.NoError(t, err)
	assert.True(t, resp.HasTranslationError())
	assert.Equal(t, "Hello", resp.SourceTranscriptRaw)
	assert.JSONEq(t, `{"url":"https://youtu.be/dQw4w9WgXcQ","source_lang":"en","target_lang":"de","merge_lines":false}`, got.body)
}

func TestFetchTranscript_FractionalDuration(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"video_id":"dQw4w9WgXcQ","video_info":{"title":"Talk","duration":212.5},`+
		`"source_transcript_raw":"Hello","translation_error":"Translation failed: timeout"}`)

	resp, err := New(srv.URL+"/api").YouTube.FetchTranscript(context.Background(), models.YouTubeRequest{
		URL: "https://youtu.be/dQw4w9WgXcQ", SourceLang: "en", TargetLang: "de",
	})
	require.NoError(t, err)
	assert.InDelta(t, 212.5, resp.VideoInfo.Duration, 1e-9)
	assert.Equal(t, "Hello", resp.SourceTranscriptRaw)
	assert.True(t, resp.HasTranslationError())

	srv, _ = newServer(t, http.StatusOK, `{"video_id":"dQw4w9WgXcQ","video_info":{"duration":61.25},"available_subtitles":["en"]}`)
	info, err := New(srv.URL+"/api").YouTube.VideoInfo(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	require.NoError(t, err)
	assert.InDelta(t, 61.25, info.VideoInfo.Duration, 1e-9)
}

func TestVideoInfo_DefaultsCookies(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"video_id":"dQw4w9WgXcQ"}`)

	_, err := New(srv.URL+"/api").YouTube.VideoInfo(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://youtu.be/dQw4w9WgXcQ","use_cookies":"none"}`, got.body)
}

func TestExtractVideoID_EscapesURL(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"video_id":"dQw4w9WgXcQ","url":"x"}`)

	_, err := New(srv.URL+"/api").YouTube.ExtractVideoID(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1")
	require.NoError(t, err)
	assert.Equal(t, "url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3DdQw4w9WgXcQ%26t%3D1", got.query)
}
