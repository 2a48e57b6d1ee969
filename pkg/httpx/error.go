package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	campusfound "gitlab.com/campusfound/campusfound-backend"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

type ErrorHandler struct {
	bundle *i18n.Bundle
	enloc  *i18n.Localizer
}

func NewErrorHandler() *ErrorHandler {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.LoadMessageFileFS(campusfound.Locales, "locales/en.toml")
	bundle.LoadMessageFileFS(campusfound.Locales, "locales/validation.en.toml")

	return &ErrorHandler{
		bundle: bundle,
		enloc:  i18n.NewLocalizer(bundle, "en"),
	}
}

func (h *ErrorHandler) Localizer(lang string) *i18n.Localizer {
	if lang == "" || strings.HasPrefix(lang, "en") {
		return h.enloc
	}
	return i18n.NewLocalizer(h.bundle, lang)
}

// HandleError records err on the span, logs it, and writes the mapped
// JSON error response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string) {
	otelx.RecordSpanError(span, err, msg)
	slog.ErrorContext(r.Context(), msg, slog.Any("error", err))

	localizer := h.Localizer(r.Header.Get("Accept-Language"))

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		writeError(w, r, appErr.Code, appErr.Localize(localizer), appErr.HTTPStatusCode())
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		var b strings.Builder
		for field, fieldErr := range valErrs {
			b.WriteString(fmt.Sprintf("%s: %s; ", field, localizeValidation(localizer, fieldErr)))
		}
		writeError(w, r, errorx.CodeValidationFailed, strings.TrimSuffix(b.String(), "; "), http.StatusBadRequest)
		return
	}

	var valErr validation.Error
	if errors.As(err, &valErr) {
		writeError(w, r, errorx.CodeValidationFailed, localizeValidation(localizer, valErr), http.StatusBadRequest)
		return
	}

	internalErr := errorx.NewInternalError().WithCause(err)
	writeError(w, r, internalErr.Code, internalErr.Localize(localizer), internalErr.HTTPStatusCode())
}

func localizeValidation(localizer *i18n.Localizer, err error) string {
	var valErr validation.Error
	if !errors.As(err, &valErr) {
		return err.Error()
	}

	msg, lerr := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    valErr.Code(),
		TemplateData: valErr.Params(),
	})
	if lerr != nil {
		return valErr.Error()
	}
	return msg
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	slog.ErrorContext(r.Context(), "bad request", slog.String("message", message))
	writeError(w, r, errorx.CodeInvalid, message, http.StatusBadRequest)
}

func writeError(w http.ResponseWriter, r *http.Request, code errorx.Code, message string, status int) {
	response := Envelope{
		"code":    code,
		"message": message,
		"success": false,
	}

	err := WriteJSON(w, status, response, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
