package api

import (
	"context"
	"net/http"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// TranslationAPI groups the text and file translation endpoints.
type TranslationAPI struct {
	c *Client
}

// Translate sends req as a multipart form to POST /translate.
// Optional fields that are empty are not sent at all.
func (t *TranslationAPI) Translate(ctx context.Context, req models.TranslationRequest) (*models.TranslationResponse, error) {
	var fields []formField
	if req.Text != "" {
		fields = append(fields, formField{name: "text", value: req.Text})
	}
	if req.File != nil {
		fields = append(fields, fileFormField(*req.File))
	}
	fields = append(fields,
		formField{name: "source_lang", value: req.SourceLang},
		formField{name: "target_lang", value: req.TargetLang},
	)
	if req.Provider != "" {
		fields = append(fields, formField{name: "provider", value: req.Provider})
	}
	if req.EntryID != "" {
		fields = append(fields, formField{name: "entry_id", value: req.EntryID})
	}

	return t.post(ctx, fields)
}

// TranslateFile uploads a file to POST /translate; the backend extracts its text.
func (t *TranslationAPI) TranslateFile(ctx context.Context, file models.FileUpload, sourceLang, targetLang string) (*models.TranslationResponse, error) {
	return t.post(ctx, []formField{
		fileFormField(file),
		{name: "source_lang", value: sourceLang},
		{name: "target_lang", value: targetLang},
	})
}

func (t *TranslationAPI) post(ctx context.Context, fields []formField) (*models.TranslationResponse, error) {
	r, err := formBody(http.MethodPost, fields)
	if err != nil {
		return nil, err
	}
	var resp models.TranslationResponse
	if err := t.c.do(ctx, "/translate", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DetectLanguage posts text alone to POST /translate/detect.
func (t *TranslationAPI) DetectLanguage(ctx context.Context, text string) (*models.LanguageDetection, error) {
	r, err := formBody(http.MethodPost, []formField{{name: "text", value: text}})
	if err != nil {
		return nil, err
	}
	var resp models.LanguageDetection
	if err := t.c.do(ctx, "/translate/detect", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Languages lists the languages the backend can translate between.
func (t *TranslationAPI) Languages(ctx context.Context) (*models.LanguagesResponse, error) {
	var resp models.LanguagesResponse
	if err := t.c.do(ctx, "/languages", request{method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Providers lists the translation providers configured on the backend.
func (t *TranslationAPI) Providers(ctx context.Context) (*models.ProvidersResponse, error) {
	var resp models.ProvidersResponse
	if err := t.c.do(ctx, "/providers", request{method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func fileFormField(f models.FileUpload) formField {
	return formField{name: "file", file: &fileField{filename: f.Filename, content: f.Content}}
}
