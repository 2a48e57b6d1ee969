package cmd

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("campusfound/application/signup/cmd")
	logger = otelslog.NewLogger("campusfound/application/signup/cmd")
)

type Start struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type StartHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	usergetter UserGetter
	codeissuer CodeIssuer
}

type StartHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserGetter UserGetter
	CodeIssuer CodeIssuer
}

func NewStartHandler(args StartHandlerArgs) *StartHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &StartHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		usergetter: args.UserGetter,
		codeissuer: args.CodeIssuer,
	}
}

// Handle validates all fields locally before touching the database or
// sending anything, so a short password never costs a code.
func (h *StartHandler) Handle(ctx context.Context, cmd Start) error {
	const op = "cmd.StartHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "StartHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	err := validation.Errors{
		"email":      validation.Validate(&cmd.Email, validationx.EmailRules...),
		"first_name": validation.Validate(&cmd.FirstName, validationx.NameRules...),
		"last_name":  validation.Validate(&cmd.LastName, validationx.NameRules...),
		"password":   validation.Validate(&cmd.Password, validationx.PasswordRules...),
	}.Filter()
	if err != nil {
		otelx.RecordSpanError(span, err, "validation failed")
		return errorx.Wrap(err, op)
	}

	u, err := h.usergetter.GetUserByEmail(ctx, cmd.Email)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		return errorx.Wrap(err, op)
	}
	if u != nil {
		otelx.RecordSpanError(span, user.ErrEmailTaken, "user already exists with this email")
		return errorx.Wrap(user.ErrEmailTaken, op)
	}
	span.AddEvent("user not found, proceeding with signup")

	if err := h.codeissuer.IssueCode(ctx, cmd.Email); err != nil {
		otelx.RecordSpanError(span, err, "failed to issue verification code")
		return errorx.Wrap(err, op)
	}

	return nil
}
