package cmd

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	authapp "gitlab.com/campusfound/campusfound-backend/internal/application/auth"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

// AutoLoginTimeout caps the auto-login step after the account is
// created. Creation always wins; a slow login degrades to manual login.
const AutoLoginTimeout = 5 * time.Second

type CompleteStatus string

const (
	StatusLoggedIn    CompleteStatus = "logged_in"
	StatusManualLogin CompleteStatus = "manual_login"
)

// Complete carries the full signup payload again together with the code.
// The server keeps no signup draft between start and complete.
type Complete struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Code      string
}

type CompleteResult struct {
	Status CompleteStatus
	Tokens authapp.LoginResponse
}

type CompleteHandler struct {
	tracer           trace.Tracer
	logger           *slog.Logger
	usergetter       UserGetter
	usersaver        UserSaver
	codechecker      CodeChecker
	tokenissuer      TokenIssuer
	autoLoginTimeout time.Duration
}

type CompleteHandlerArgs struct {
	Tracer           trace.Tracer
	Logger           *slog.Logger
	UserGetter       UserGetter
	UserSaver        UserSaver
	CodeChecker      CodeChecker
	TokenIssuer      TokenIssuer
	AutoLoginTimeout *time.Duration
}

func NewCompleteHandler(args CompleteHandlerArgs) *CompleteHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	h := &CompleteHandler{
		tracer:           args.Tracer,
		logger:           args.Logger,
		usergetter:       args.UserGetter,
		usersaver:        args.UserSaver,
		codechecker:      args.CodeChecker,
		tokenissuer:      args.TokenIssuer,
		autoLoginTimeout: AutoLoginTimeout,
	}
	if args.AutoLoginTimeout != nil {
		h.autoLoginTimeout = *args.AutoLoginTimeout
	}

	return h
}

func (h *CompleteHandler) Handle(ctx context.Context, cmd Complete) (CompleteResult, error) {
	const op = "cmd.CompleteHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "CompleteHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	existing, err := h.usergetter.GetUserByEmail(ctx, cmd.Email)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		return CompleteResult{}, errorx.Wrap(err, op)
	}
	if existing != nil {
		otelx.RecordSpanError(span, user.ErrEmailTaken, "user already exists with this email")
		return CompleteResult{}, errorx.Wrap(user.ErrEmailTaken, op)
	}

	if err := h.codechecker.CheckCode(ctx, cmd.Email, cmd.Code); err != nil {
		otelx.RecordSpanError(span, err, "verification code check failed")
		return CompleteResult{}, errorx.Wrap(err, op)
	}
	span.AddEvent("verification code accepted")

	u, err := user.NewUser(user.NewUserArgs{
		Email:     cmd.Email,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Password:  cmd.Password,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create user")
		return CompleteResult{}, errorx.Wrap(err, op)
	}

	if err := h.usersaver.SaveUser(ctx, u); err != nil {
		otelx.RecordSpanError(span, err, "failed to save user")
		if errorx.IsDuplicateEntry(err) {
			return CompleteResult{}, errorx.Wrap(user.ErrEmailTaken.WithCause(err), op)
		}
		return CompleteResult{}, errorx.Wrap(err, op)
	}
	span.AddEvent("user created", trace.WithAttributes(attribute.String("user.id", u.ID().String())))

	loginCtx, cancel := context.WithTimeout(ctx, h.autoLoginTimeout)
	defer cancel()

	tokens, err := h.tokenissuer.IssueTokens(loginCtx, u)
	if err != nil {
		span.AddEvent("auto login failed, falling back to manual login")
		h.logger.WarnContext(ctx, "auto login after signup failed",
			slog.String("user.id", u.ID().String()),
			slog.Any("error", err),
		)
		return CompleteResult{Status: StatusManualLogin}, nil
	}

	return CompleteResult{Status: StatusLoggedIn, Tokens: tokens}, nil
}
