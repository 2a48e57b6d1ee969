package authapp

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
)

const (
	AccessTokenExpDuration  = 30 * time.Minute
	RefreshTokenExpDuration = 14 * 24 * time.Hour

	tokenIssuer = "campusfound_auth"
)

var (
	tracer = otel.Tracer("campusfound/internal/application/auth")
	logger = otelslog.NewLogger("campusfound/internal/application/auth")
)

var ErrWrongEmailOrPassword = errorx.NewUnauthorized().WithKey("wrong_email_or_password")

type UserGetter interface {
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}

type App struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	usergetter UserGetter

	accessTokenExpDuration  time.Duration
	refreshTokenExpDuration time.Duration
	accessTokenSecretKey    []byte
	refreshTokenSecretKey   []byte
	signingMethod           *jwt.SigningMethodHMAC
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserGetter UserGetter

	AccessTokenSecretKey    string
	RefreshTokenSecretKey   string
	AccessTokenExpDuration  *time.Duration
	RefreshTokenExpDuration *time.Duration
}

func NewApp(args Args) *App {
	app := &App{
		tracer:     tracer,
		logger:     logger,
		usergetter: args.UserGetter,

		accessTokenExpDuration:  AccessTokenExpDuration,
		refreshTokenExpDuration: RefreshTokenExpDuration,
		accessTokenSecretKey:    []byte(args.AccessTokenSecretKey),
		refreshTokenSecretKey:   []byte(args.RefreshTokenSecretKey),
		signingMethod:           jwt.SigningMethodHS256,
	}

	if args.AccessTokenExpDuration != nil {
		app.accessTokenExpDuration = *args.AccessTokenExpDuration
	}
	if args.RefreshTokenExpDuration != nil {
		app.refreshTokenExpDuration = *args.RefreshTokenExpDuration
	}
	if args.Tracer != nil {
		app.tracer = args.Tracer
	}
	if args.Logger != nil {
		app.logger = args.Logger
	}

	return app
}

type Login struct {
	Email    string
	Password string
}

type LoginResponse struct {
	AccessToken     string
	RefreshToken    string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
}

// LoginHandle handles user login logic and returns access and refresh jwt tokens
func (a *App) LoginHandle(ctx context.Context, cmd Login) (LoginResponse, error) {
	ctx, span := a.tracer.Start(
		ctx,
		"App.LoginHandle",
		trace.WithAttributes(
			attribute.String("user.email", logging.RedactEmail(cmd.Email)),
			attribute.String("signing_method", a.signingMethod.Alg()),
			attribute.String("access_token_exp_duration", a.accessTokenExpDuration.String()),
			attribute.String("refresh_token_exp_duration", a.refreshTokenExpDuration.String()),
		),
	)
	defer span.End()

	u, err := a.usergetter.GetUserByEmail(ctx, cmd.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get user")
		if errorx.IsNotFound(err) {
			return LoginResponse{}, ErrWrongEmailOrPassword.WithCause(err)
		}
		return LoginResponse{}, err
	}

	err = u.ComparePassword(cmd.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compare password")
		return LoginResponse{}, ErrWrongEmailOrPassword.WithCause(err)
	}

	return a.IssueTokens(ctx, u)
}

// IssueTokens signs a fresh token pair for an already-authenticated user.
// Used by login and by the signup auto-login step.
func (a *App) IssueTokens(ctx context.Context, u *user.User) (LoginResponse, error) {
	_, span := a.tracer.Start(ctx, "App.IssueTokens",
		trace.WithAttributes(attribute.String("user.id", u.ID().String())),
	)
	defer span.End()

	accessToken := jwt.NewWithClaims(a.signingMethod, jwt.MapClaims{
		"iss":       tokenIssuer,
		"sub":       "user",
		"exp":       time.Now().Add(a.accessTokenExpDuration).Unix(),
		"iat":       time.Now().Unix(),
		"uid":       u.ID().String(),
		"user_role": u.Role().String(),
	})
	refreshToken := jwt.NewWithClaims(a.signingMethod, jwt.MapClaims{
		"iss":   tokenIssuer,
		"sub":   "refresh",
		"exp":   time.Now().Add(a.refreshTokenExpDuration).Unix(),
		"iat":   time.Now().Unix(),
		"jti":   uuid.New().String(),
		"uid":   u.ID().String(),
		"scope": "refresh",
	})

	accessjwt, err := accessToken.SignedString(a.accessTokenSecretKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign access token")
		return LoginResponse{}, err
	}
	refreshjwt, err := refreshToken.SignedString(a.refreshTokenSecretKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign refresh token")
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken:     accessjwt,
		RefreshToken:    refreshjwt,
		AccessTokenExp:  a.accessTokenExpDuration,
		RefreshTokenExp: a.refreshTokenExpDuration,
	}, nil
}

type Refresh struct {
	RefreshToken string
}

func (a *App) RefreshHandle(ctx context.Context, cmd Refresh) (LoginResponse, error) {
	ctx, span := a.tracer.Start(
		ctx,
		"App.RefreshHandle",
		trace.WithAttributes(
			attribute.String("signing_method", a.signingMethod.Alg()),
			attribute.String("access_token_exp_duration", a.accessTokenExpDuration.String()),
			attribute.String("refresh_token_exp_duration", a.refreshTokenExpDuration.String()),
		),
	)
	defer span.End()

	refreshToken, err := jwt.Parse(cmd.RefreshToken, func(t *jwt.Token) (any, error) {
		return a.refreshTokenSecretKey, nil
	}, jwt.WithValidMethods([]string{a.signingMethod.Alg()}))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse refresh jwt token")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}

	refreshClaims, ok := refreshToken.Claims.(jwt.MapClaims)
	if !ok {
		err = errors.New("refresh token claims are not map claims")
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse refresh token claims")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	if refreshClaims["iss"] != tokenIssuer || refreshClaims["sub"] != "refresh" {
		err = errors.New("invalid refresh token issuer or subject")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid refresh token claims")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	expUnix, ok := refreshClaims["exp"].(float64)
	if !ok {
		err = errors.New("missing refresh token expiration")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid refresh token expiration")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	exp := time.Unix(int64(expUnix), 0)
	if exp.Before(time.Now().UTC()) {
		err = errors.New("refresh token expired")
		span.RecordError(err)
		span.SetStatus(codes.Error, "refresh token expired")
		return LoginResponse{}, errorx.NewTokenExpired().WithCause(err)
	}
	uid, ok := refreshClaims["uid"].(string)
	if !ok {
		err := errors.New("missing or invalid user id in refresh token claims")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid refresh token user id")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	span.SetAttributes(attribute.String("user.id", uid))

	userID, err := uuid.Parse(uid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse user id")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}

	u, err := a.usergetter.GetUserByID(ctx, user.ID(userID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get user by id")
		return LoginResponse{}, errorx.NewInternalError().WithCause(err)
	}

	accessToken := jwt.NewWithClaims(a.signingMethod, jwt.MapClaims{
		"iss":       tokenIssuer,
		"sub":       "user",
		"exp":       time.Now().Add(a.accessTokenExpDuration).Unix(),
		"iat":       time.Now().Unix(),
		"uid":       u.ID().String(),
		"user_role": u.Role().String(),
	})

	accessjwt, err := accessToken.SignedString(a.accessTokenSecretKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign access token")
		return LoginResponse{}, errorx.NewInternalError().WithCause(err)
	}

	return LoginResponse{
		AccessToken:     accessjwt,
		RefreshToken:    cmd.RefreshToken, // keep the same refresh token
		AccessTokenExp:  a.accessTokenExpDuration,
		RefreshTokenExp: a.refreshTokenExpDuration,
	}, nil
}

type JWTTokenAssertion struct {
	token    string
	jwttoken *jwt.Token
	claims   jwt.MapClaims
	t        *testing.T
}

func NewJWTTokenAssertion(t *testing.T, token string, secretkey []byte) *JWTTokenAssertion {
	t.Helper()

	jwttoken, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return secretkey, nil
	})
	require.NoError(t, err)

	claims, ok := jwttoken.Claims.(jwt.MapClaims)
	require.True(t, ok, "jwt token claims must be type jwt.MapClaims")

	return &JWTTokenAssertion{
		t:        t,
		token:    token,
		jwttoken: jwttoken,
		claims:   claims,
	}
}

func (a *JWTTokenAssertion) AssertValid() *JWTTokenAssertion {
	a.t.Helper()
	assert.NotNil(a.t, a.jwttoken, "jwt token should not be nil")
	assert.True(a.t, a.jwttoken.Valid, "jwt token should be valid")
	return a
}

func (a *JWTTokenAssertion) AssertISS(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["iss"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertSub(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["sub"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertExp(expected time.Time) *JWTTokenAssertion {
	a.t.Helper()
	exp, ok := a.claims["exp"].(float64)
	require.True(a.t, ok, "exp claim must be of type float64, got %T", a.claims["exp"])
	assert.NotZero(a.t, exp, "exp claim should not be zero")
	expTime := time.Unix(int64(exp), 0)
	assert.WithinDuration(a.t, expected, expTime, time.Second, "exp claim should be within 1 second of expected time")
	return a
}

func (a *JWTTokenAssertion) AssertScope(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["scope"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertJTINotEmpty() *JWTTokenAssertion {
	a.t.Helper()
	assert.NotEmpty(a.t, a.claims["jti"], "jti claim should not be empty")
	return a
}

func (a *JWTTokenAssertion) AssertUID(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["uid"], expected)
	return a
}

func (a *JWTTokenAssertion) AssertUserRole(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, a.claims["user_role"], expected)
	return a
}
