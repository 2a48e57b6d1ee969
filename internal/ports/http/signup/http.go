package signuphttp

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	signupapp "gitlab.com/campusfound/campusfound-backend/internal/application/signup"
	"gitlab.com/campusfound/campusfound-backend/internal/application/signup/cmd"
	verificationquery "gitlab.com/campusfound/campusfound-backend/internal/application/verification/query"
	"gitlab.com/campusfound/campusfound-backend/pkg/env"
	"gitlab.com/campusfound/campusfound-backend/pkg/httpx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/sanitizex"
	"gitlab.com/campusfound/campusfound-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("campusfound/internal/ports/http/signup")
	logger = otelslog.NewLogger("campusfound/internal/ports/http/signup")
)

type HTTP struct {
	tracer       trace.Tracer
	logger       *slog.Logger
	cmd          *signupapp.Command
	codequery    *verificationquery.GetVerificationCodeHandler
	errhandler   *httpx.ErrorHandler
	cookieDomain string
}

type Args struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	App          *signupapp.App
	CodeQuery    *verificationquery.GetVerificationCodeHandler
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
		cmd:          &args.App.CMD,
		codequery:    args.CodeQuery,
		errhandler:   args.Errhandler,
		cookieDomain: args.CookieDomain,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/signup", func(r chi.Router) {
		r.Post("/start", h.Start)
		r.Post("/resend", h.Resend)
		r.Post("/complete", h.Complete)
	})

	if env.Current() == env.Dev || env.Current() == env.Local || env.Current() == env.Test {
		r.Get("/dev/verifications/{email}", h.GetVerificationCode)
	}
}

type StartRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func (r *StartRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.FirstName = sanitizex.CleanSingleLine(r.FirstName)
	r.LastName = sanitizex.CleanSingleLine(r.LastName)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *StartRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *StartRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.FirstName, validationx.NameRules...),
		validation.Field(&r.LastName, validationx.NameRules...),
		validation.Field(&r.Password, validationx.PasswordRules...),
	)
}

func (h *HTTP) Start(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SignupStart")
	defer span.End()

	var req StartRequest
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

	err := h.cmd.Start.Handle(ctx, cmd.Start{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to start signup")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

type ResendRequest struct {
	Email string `json:"email"`
}

func (r *ResendRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *ResendRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *ResendRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) Resend(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SignupResend")
	defer span.End()

	var req ResendRequest
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

	if err := h.cmd.Resend.Handle(ctx, cmd.Resend{Email: req.Email}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to resend verification code")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

type CompleteRequest struct {
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Password         string `json:"password"`
	VerificationCode string `json:"verification_code"`
}

func (r *CompleteRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.FirstName = sanitizex.CleanSingleLine(r.FirstName)
	r.LastName = sanitizex.CleanSingleLine(r.LastName)
	r.VerificationCode = sanitizex.CleanSingleLine(r.VerificationCode)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *CompleteRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *CompleteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.FirstName, validationx.NameRules...),
		validation.Field(&r.LastName, validationx.NameRules...),
		validation.Field(&r.Password, validationx.PasswordRules...),
		validation.Field(&r.VerificationCode, validationx.CodeRules...),
	)
}

func (h *HTTP) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SignupComplete")
	defer span.End()

	var req CompleteRequest
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

	result, err := h.cmd.Complete.Handle(ctx, cmd.Complete{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Code:      req.VerificationCode,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to complete signup")
		return
	}

	if result.Status == cmd.StatusLoggedIn {
		httpx.SetAuthCookies(w, h.cookieDomain, result.Tokens.AccessToken, result.Tokens.RefreshToken,
			result.Tokens.AccessTokenExp, result.Tokens.RefreshTokenExp)
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"status": string(result.Status)})
}

func (h *HTTP) GetVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetVerificationCode")
	defer span.End()

	email := chi.URLParam(r, "email")
	email = sanitizex.CleanSingleLine(email)

	if err := validation.Validate(email, validationx.EmailRules...); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate email")
		return
	}

	code, err := h.codequery.Handle(ctx, email)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get verification code")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"verification_code": code})
}
