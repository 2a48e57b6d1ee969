package userquery

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("campusfound/internal/application/user/query")
	logger = otelslog.NewLogger("campusfound/internal/application/user/query")
)

// Profile is the read model served by GET /v1/users/me. The cache stores
// it as-is.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

func ProfileFromUser(u *user.User) *Profile {
	return &Profile{
		ID:        u.ID().String(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role().String(),
		AvatarURL: u.AvatarURL(),
		CreatedAt: u.CreatedAt(),
	}
}

type UserGetter interface {
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
}

type ProfileCache interface {
	GetProfile(ctx context.Context, id user.ID) (*Profile, error)
	SetProfile(ctx context.Context, id user.ID, p *Profile) error
}

type GetProfileHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	usergetter UserGetter
	cache      ProfileCache
}

type GetProfileHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserGetter UserGetter
	Cache      ProfileCache
}

func NewGetProfileHandler(args GetProfileHandlerArgs) *GetProfileHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &GetProfileHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		usergetter: args.UserGetter,
		cache:      args.Cache,
	}
}

// Handle serves from the cache when possible and falls back to the
// database, repopulating the cache on the way out. Cache failures are
// logged, never surfaced.
func (h *GetProfileHandler) Handle(ctx context.Context, id user.ID) (*Profile, error) {
	const op = "userquery.GetProfileHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "GetProfileHandler.Handle",
		trace.WithAttributes(attribute.String("user.id", id.String())),
	)
	defer span.End()

	if h.cache != nil {
		p, err := h.cache.GetProfile(ctx, id)
		if err == nil {
			span.AddEvent("profile served from cache")
			return p, nil
		}
		if !errorx.IsNotFound(err) {
			h.logger.WarnContext(ctx, "profile cache read failed", slog.Any("error", err))
		}
	}

	u, err := h.usergetter.GetUserByID(ctx, id)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by id")
		return nil, errorx.Wrap(err, op)
	}

	p := ProfileFromUser(u)

	if h.cache != nil {
		if err := h.cache.SetProfile(ctx, id, p); err != nil {
			h.logger.WarnContext(ctx, "profile cache write failed", slog.Any("error", err))
		}
	}

	return p, nil
}
