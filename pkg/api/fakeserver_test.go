package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/ytt-client/internal/handlers"
	"github.com/Shimizu-Technology/ytt-client/internal/router"
	"github.com/Shimizu-Technology/ytt-client/internal/services/transcript"
	"github.com/Shimizu-Technology/ytt-client/internal/services/translator"
	"github.com/Shimizu-Technology/ytt-client/internal/store"
	"github.com/Shimizu-Technology/ytt-client/pkg/api"
	"github.com/Shimizu-Technology/ytt-client/pkg/models"
	"github.com/Shimizu-Technology/ytt-client/pkg/settings"
)

// newBackend starts the in-memory backend and returns a client pointed at it.
func newBackend(t *testing.T, unavailable ...string) *api.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop().Sugar()
	h := handlers.NewHandler(store.New(), transcript.DefaultCatalog(), translator.New(unavailable...),
		handlers.BuildInfo{Version: "1.0.0", BuildDate: "dev", GitCommit: "dev"}, logger)
	srv := httptest.NewServer(router.Setup(h, "/api", nil, logger))
	t.Cleanup(srv.Close)

	return api.New(srv.URL+"/api", api.WithHTTPClient(srv.Client()))
}

func TestClient_TranslateAndHistory(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	resp, err := c.Translation.Translate(ctx, models.TranslationRequest{Text: "Bonjour le monde", SourceLang: "fr", TargetLang: "en"})
	require.NoError(t, err)
	assert.Equal(t, "[en] Bonjour le monde", resp.TranslatedText)

	file, err := c.Translation.TranslateFile(ctx, models.FileUpload{Filename: "notes.md", Content: strings.NewReader("Hola mundo")}, "es", "de")
	require.NoError(t, err)
	assert.Equal(t, "[de] Hola mundo", file.TranslatedText)

	entries, err := c.History.List(ctx, models.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, file.ID, entries[0].ID)
	require.NotNil(t, entries[0].FileName)
	assert.Equal(t, "notes.md", *entries[0].FileName)

	got, err := c.History.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour le monde", got.OriginalText)

	md, err := c.History.Export(ctx, resp.ID, api.ExportMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Translation\n\n[en] Bonjour le monde")

	txt, err := c.History.Export(ctx, resp.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "[en] Bonjour le monde", string(txt))

	_, err = c.History.Export(ctx, resp.ID, "docx")
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))

	msg, err := c.History.Delete(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Translation deleted successfully", msg.Message)

	_, err = c.History.Get(ctx, resp.ID)
	require.True(t, api.IsStatus(err, http.StatusNotFound))
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Translation not found", apiErr.Detail())

	_, err = c.History.Clear(ctx)
	require.NoError(t, err)
	entries, err = c.History.List(ctx, models.HistoryQuery{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClient_TranslateRequiresInput(t *testing.T) {
	c := newBackend(t)

	_, err := c.Translation.Translate(context.Background(), models.TranslationRequest{SourceLang: "fr", TargetLang: "en"})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, `{"detail":"Either text or file must be provided"}`, apiErr.Message)
}

func TestClient_DetectLanguagesProviders(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	det, err := c.Translation.DetectLanguage(ctx, "Hallo und willkommen")
	require.NoError(t, err)
	assert.Equal(t, "de", det.DetectedLanguage)

	langs, err := c.Translation.Languages(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, langs.Languages)

	providers, err := c.Translation.Providers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, providers.Providers)
}

func TestClient_YouTube(t *testing.T) {
	c := newBackend(t, "ja")
	ctx := context.Background()
	const videoURL = "https://youtu.be/dQw4w9WgXcQ"

	id, err := c.YouTube.ExtractVideoID(ctx, videoURL)
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", id.VideoID)

	info, err := c.YouTube.VideoInfo(ctx, videoURL, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, info.AvailableSubtitles)

	ok, err := c.YouTube.FetchTranscript(ctx, models.YouTubeRequest{URL: videoURL, SourceLang: "en", TargetLang: "de"})
	require.NoError(t, err)
	assert.False(t, ok.HasTranslationError())
	assert.NotEmpty(t, ok.TargetTranscriptProcessed)

	partial, err := c.YouTube.FetchTranscript(ctx, models.YouTubeRequest{URL: videoURL, SourceLang: "en", TargetLang: "ja"})
	require.NoError(t, err)
	assert.True(t, partial.HasTranslationError())
	assert.NotEmpty(t, partial.SourceTranscriptRaw)

	_, err = c.YouTube.FetchTranscript(ctx, models.YouTubeRequest{URL: "not a url", SourceLang: "en"})
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))
}

func TestClient_VersionAndHealth(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v.Version)

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.Healthy())
}

func TestSettingsStore_AgainstBackend(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()
	s := settings.NewStore(c.Settings, nil)

	var seen []models.Theme
	unsubscribe := s.Subscribe(func(v models.Settings) { seen = append(seen, v.Theme) })
	defer unsubscribe()

	_, ok := s.Load(ctx)
	require.True(t, ok)

	theme := models.ThemeG80
	updated, err := s.Update(ctx, models.SettingsUpdate{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeG80, updated.Theme)

	speed := 10.0
	_, err = s.Update(ctx, models.SettingsUpdate{AutoScrollSpeed: &speed})
	require.True(t, api.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, models.ThemeG80, s.Current().Theme)
	assert.Equal(t, 1.0, s.Current().AutoScrollSpeed)

	exported, err := c.Settings.Export(ctx)
	require.NoError(t, err)

	_, err = s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s.Current())

	_, err = s.Import(ctx, *exported)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeG80, s.Current().Theme)

	assert.Equal(t, []models.Theme{models.ThemeWhite, models.ThemeG80, models.ThemeWhite, models.ThemeG80}, seen)
}
