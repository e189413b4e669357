package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/domain/session"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// SessionService is the session controller driven by the form
type SessionService interface {
	Update(ctx context.Context, state session.State)
	Generate(ctx context.Context) (*composer.ComposedImage, error)
	Save(ctx context.Context, path string) (string, error)
	Verify(ctx context.Context) (string, error)
	Clear(ctx context.Context)
	Snapshot() session.Snapshot
}

// Handler contains service dependencies for the form handlers
type Handler struct {
	service     SessionService
	defaultPath string
}

// PreviewResponse is the response for the JSON preview endpoint
type PreviewResponse struct {
	HasImage bool   `json:"has_image"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Version  int    `json:"version,omitempty"`
	PNG      []byte `json:"png,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new form handler. defaultPath is offered as the save destination.
func NewHandler(service SessionService, defaultPath string) *Handler {
	return &Handler{
		service:     service,
		defaultPath: defaultPath,
	}
}

// DefaultSavePath joins the output directory and file name from configuration
func DefaultSavePath(outputDir, filename string) string {
	if outputDir == "" {
		return filename
	}
	return filepath.Join(outputDir, filename)
}

// Index renders the form with the current session
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	appLogger.CtxDebug(r.Context(), "Rendering form", appLogger.LoggerInfo{
		ContextFunction: constant.CtxIndex,
	})

	h.render(w, r, http.StatusOK, "", false)
}

// Generate updates the session from the form and generates a QR code
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := parseState(r)
	if err != nil {
		appLogger.CtxWarn(ctx, "Invalid form input", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIParseForm,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		h.render(w, r, http.StatusBadRequest, fmt.Sprintf(constant.MsgGenerateFailedNotice, err), true)
		return
	}

	h.service.Update(ctx, state)

	if _, err := h.service.Generate(ctx); err != nil {
		h.serviceError(ctx, constant.CtxGenerate, err)
		h.render(w, r, statusFor(err), fmt.Sprintf(constant.MsgGenerateFailedNotice, err), true)
		return
	}

	notice := ""
	if r.PostForm.Get(constant.FieldVerify) != "" {
		text, err := h.service.Verify(ctx)
		if err != nil {
			notice = fmt.Sprintf(constant.MsgDecodeFailedNotice, err)
		} else {
			notice = fmt.Sprintf(constant.MsgDecodedNotice, text)
		}
	}

	h.render(w, r, http.StatusOK, notice, false)
}

// Save writes the held image to the path form field, or the configured default
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, fmt.Sprintf(constant.MsgSaveFailedNotice, err), true)
		return
	}

	path := strings.TrimSpace(r.PostForm.Get(constant.FieldPath))
	if path == "" {
		path = h.defaultPath
	}

	saved, err := h.service.Save(ctx, path)
	if err != nil {
		h.serviceError(ctx, constant.CtxSave, err)
		h.render(w, r, statusFor(err), fmt.Sprintf(constant.MsgSaveFailedNotice, err), true)
		return
	}

	h.render(w, r, http.StatusOK, fmt.Sprintf(constant.MsgSavedNotice, saved), false)
}

// Clear resets the session
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	h.render(w, r, http.StatusOK, "", false)
}

// PreviewPNG serves the held image, 404 when nothing was generated
func (h *Handler) PreviewPNG(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	if !snap.HasImage() {
		http.NotFound(w, r)
		return
	}

	data, err := snap.Image.PNG()
	if err != nil {
		appLogger.CtxError(r.Context(), "Failed to encode preview", appLogger.LoggerInfo{
			ContextFunction: constant.CtxPreview,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIRender,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Failed to encode preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set(constant.HeaderContentType, "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// PreviewJSON reports the held image with its PNG encoding
func (h *Handler) PreviewJSON(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	if !snap.HasImage() {
		WriteJSON(w, PreviewResponse{}, http.StatusOK)
		return
	}

	data, err := snap.Image.PNG()
	if err != nil {
		WriteJSONError(w, "Failed to encode preview", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, PreviewResponse{
		HasImage: true,
		Width:    snap.Image.Width(),
		Height:   snap.Image.Height(),
		Version:  snap.Image.Version,
		PNG:      data,
	}, http.StatusOK)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, notice string, isErr bool) {
	snap := h.service.Snapshot()

	data := PageData{
		Text:       snap.State.Text,
		Size:       snap.State.Size,
		Border:     snap.State.Border,
		Fill:       snap.State.Fill.Hex(),
		Background: snap.State.Background.Hex(),
		LogoPath:   snap.State.LogoPath,
		SavePath:   h.defaultPath,
		Notice:     notice,
		IsErr:      isErr,
	}
	if snap.HasImage() {
		data.HasImage = true
		data.Width = snap.Image.Width()
		data.Height = snap.Image.Height()
		data.Version = snap.Image.Version
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		appLogger.CtxError(r.Context(), "Failed to render page", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIndex,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIRender,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set(constant.HeaderContentType, "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) serviceError(ctx context.Context, fn string, err error) {
	appLogger.CtxWarn(ctx, "Session operation failed", appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIServiceError,
			Message: err.Error(),
			Type:    constant.ErrTypeAPI,
		},
		Data: map[string]interface{}{
			constant.DataKind: composer.KindOf(err).String(),
		},
	})
}

// parseState reads the generation form. Colors are validated here; size and
// border are kept raw for the session to parse.
func parseState(r *http.Request) (session.State, error) {
	if err := r.ParseForm(); err != nil {
		return session.State{}, err
	}

	fill, err := parseColorField(r, constant.FieldFill, constant.DefaultFill)
	if err != nil {
		return session.State{}, err
	}
	background, err := parseColorField(r, constant.FieldBackground, constant.DefaultBackground)
	if err != nil {
		return session.State{}, err
	}

	return session.State{
		Text:       r.PostForm.Get(constant.FieldText),
		Size:       r.PostForm.Get(constant.FieldSize),
		Border:     r.PostForm.Get(constant.FieldBorder),
		Fill:       fill,
		Background: background,
		LogoPath:   strings.TrimSpace(r.PostForm.Get(constant.FieldLogo)),
	}, nil
}

func parseColorField(r *http.Request, field, fallback string) (composer.Color, error) {
	raw := strings.TrimSpace(r.PostForm.Get(field))
	if raw == "" {
		raw = fallback
	}
	c, err := composer.ParseColor(raw)
	if err != nil {
		return composer.Color{}, fmt.Errorf("%s: %w", field, err)
	}
	return c, nil
}

// statusFor maps a composer error kind to an HTTP status
func statusFor(err error) int {
	switch composer.KindOf(err) {
	case composer.KindValidation:
		return http.StatusBadRequest
	case composer.KindResource:
		return http.StatusUnprocessableEntity
	case composer.KindCapacity:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set(constant.HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
