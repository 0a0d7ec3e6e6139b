package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// YouTubeAPI groups the video transcript endpoints.
type YouTubeAPI struct {
	c *Client
}

// FetchTranscript posts req as JSON to POST /youtube/fetch.
//
// A response whose TranslationError is set is still a success: the transcript
// is usable, only the translation is missing. It is returned as-is, with a nil error.
func (y *YouTubeAPI) FetchTranscript(ctx context.Context, req models.YouTubeRequest) (*models.YouTubeResponse, error) {
	r, err := jsonBody(http.MethodPost, req)
	if err != nil {
		return nil, err
	}
	var resp models.YouTubeResponse
	if err := y.c.do(ctx, "/youtube/fetch", r, &resp); err != nil {
		return nil, err
	}
	if resp.HasTranslationError() {
		y.c.logger.Infow("transcript fetched without translation",
			"video_id", resp.VideoID,
			"target_lang", resp.TargetLang,
			"translation_error", resp.TranslationError,
		)
	}
	return &resp, nil
}

// VideoInfo fetches metadata and available subtitles via POST /youtube/info.
// An empty useCookies is sent as "none".
func (y *YouTubeAPI) VideoInfo(ctx context.Context, videoURL, useCookies string) (*models.VideoInfoResponse, error) {
	if useCookies == "" {
		useCookies = models.CookiesNone
	}
	r, err := jsonBody(http.MethodPost, models.VideoInfoRequest{URL: videoURL, UseCookies: useCookies})
	if err != nil {
		return nil, err
	}
	var resp models.VideoInfoResponse
	if err := y.c.do(ctx, "/youtube/info", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExtractVideoID asks the backend to parse a YouTube URL.
func (y *YouTubeAPI) ExtractVideoID(ctx context.Context, videoURL string) (*models.ExtractIDResponse, error) {
	var resp models.ExtractIDResponse
	path := "/youtube/extract-id?url=" + url.QueryEscape(videoURL)
	if err := y.c.do(ctx, path, request{method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
