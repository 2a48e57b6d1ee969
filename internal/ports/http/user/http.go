package userhttp

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	userapp "gitlab.com/campusfound/campusfound-backend/internal/application/user"
	usercmd "gitlab.com/campusfound/campusfound-backend/internal/application/user/cmd"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/ports/http/middlewares"
	"gitlab.com/campusfound/campusfound-backend/pkg/ctxs"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/httpx"
	"gitlab.com/campusfound/campusfound-backend/pkg/sanitizex"
	"gitlab.com/campusfound/campusfound-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("campusfound/internal/ports/http/user")
	logger = otelslog.NewLogger("campusfound/internal/ports/http/user")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        userapp.Command
	query      userapp.Query
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserApp    *userapp.App
	Middleware *middlewares.Middleware
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        args.UserApp.Command,
		query:      args.UserApp.Query,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/users", func(r chi.Router) {
		r.Use(h.middleware.Auth)

		r.Get("/me", h.GetMe)
		r.Put("/me/avatar", h.UpdateAvatar)
		r.Delete("/me/avatar", h.DeleteAvatar)
		r.Post("/me/password/start", h.ChangePasswordStart)
		r.Post("/me/password/complete", h.ChangePasswordComplete)
	})
}

func (h *HTTP) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.GetMe")
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	profile, err := h.query.GetProfile.Handle(ctx, ctxUser.ID)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get profile")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"profile": profile})
}

func (h *HTTP) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	const op = "userhttp.HTTP.UpdateAvatar"
	ctx, span := h.tracer.Start(r.Context(), op)
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	err = r.ParseMultipartForm(user.MaxAvatarSize)
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "failed to get avatar file from form")
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("failed to close avatar file", slog.String("error", cerr.Error()))
		}
	}()

	cmd := &usercmd.UpdateAvatar{
		UserID:      ctxUser.ID,
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}

	err = h.cmd.UpdateAvatar.Handle(ctx, cmd)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to update avatar")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.DeleteAvatar")
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	if err := h.cmd.DeleteAvatar.Handle(ctx, &usercmd.DeleteAvatar{UserID: ctxUser.ID}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to delete avatar")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

type ChangePasswordStartRequest struct {
	CurrentPassword string `json:"current_password"`
}

func (r *ChangePasswordStartRequest) Sanitized() {
	r.CurrentPassword = strings.TrimSpace(r.CurrentPassword)
}

func (r *ChangePasswordStartRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
	)
}

func (h *HTTP) ChangePasswordStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.ChangePasswordStart")
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	var req ChangePasswordStartRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	err = h.cmd.ChangePasswordStart.Handle(ctx, usercmd.ChangePasswordStart{
		UserID:          ctxUser.ID,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to start password change")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

type ChangePasswordCompleteRequest struct {
	CurrentPassword  string `json:"current_password"`
	NewPassword      string `json:"new_password"`
	VerificationCode string `json:"verification_code"`
}

func (r *ChangePasswordCompleteRequest) Sanitized() {
	r.CurrentPassword = strings.TrimSpace(r.CurrentPassword)
	r.NewPassword = strings.TrimSpace(r.NewPassword)
	r.VerificationCode = sanitizex.CleanSingleLine(r.VerificationCode)
}

func (r *ChangePasswordCompleteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validationx.PasswordRules...),
		validation.Field(&r.VerificationCode, validationx.CodeRules...),
	)
}

func (h *HTTP) ChangePasswordComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.ChangePasswordComplete")
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	var req ChangePasswordCompleteRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	err = h.cmd.ChangePasswordComplete.Handle(ctx, usercmd.ChangePasswordComplete{
		UserID:          ctxUser.ID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Code:            req.VerificationCode,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to complete password change")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}
