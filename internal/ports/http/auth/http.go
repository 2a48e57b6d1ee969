package authhttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	authapp "gitlab.com/campusfound/campusfound-backend/internal/application/auth"
	"gitlab.com/campusfound/campusfound-backend/pkg/httpx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/sanitizex"
	"gitlab.com/campusfound/campusfound-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("campusfound/internal/ports/http/auth")
	logger = otelslog.NewLogger("campusfound/internal/ports/http/auth")
)

type HTTP struct {
	tracer       trace.Tracer
	logger       *slog.Logger
	app          *authapp.App
	errhandler   *httpx.ErrorHandler
	cookiedomain string
}

type Args struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	App          *authapp.App
	Errhandler   *httpx.ErrorHandler
	CookieDomain string
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:       args.Tracer,
		logger:       args.Logger,
		app:          args.App,
		errhandler:   args.Errhandler,
		cookiedomain: args.CookieDomain,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/refresh", h.Refresh)
	r.Post("/v1/auth/logout", h.Logout)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *LoginRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *HTTP) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Login")
	defer span.End()

	var req LoginRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	res, err := h.app.LoginHandle(ctx, authapp.Login{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to login")
		return
	}

	httpx.SetAuthCookies(w, h.cookiedomain, res.AccessToken, res.RefreshToken, res.AccessTokenExp, res.RefreshTokenExp)

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Refresh")
	defer span.End()

	refreshCookie, err := r.Cookie(httpx.RefreshJWTCookie)
	if err != nil {
		h.errhandler.HandleError(w, r, span, fmt.Errorf("failed to get cookie from request: %w", err), "missing refresh cookie")
		return
	}

	res, err := h.app.RefreshHandle(ctx, authapp.Refresh{RefreshToken: refreshCookie.Value})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to refresh token")
		return
	}

	httpx.SetAuthCookies(w, h.cookiedomain, res.AccessToken, res.RefreshToken, res.AccessTokenExp, res.RefreshTokenExp)

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) Logout(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "Logout")
	defer span.End()

	httpx.ClearAuthCookies(w)
	span.AddEvent("user logged out", trace.WithAttributes(
		attribute.String("cookie_domain", h.cookiedomain),
	))

	httpx.Success(w, r, http.StatusOK, nil)
}
