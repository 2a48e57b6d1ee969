package http

import (
	"github.com/go-chi/chi/v5"

	authapp "gitlab.com/campusfound/campusfound-backend/internal/application/auth"
	itemapp "gitlab.com/campusfound/campusfound-backend/internal/application/item"
	signupapp "gitlab.com/campusfound/campusfound-backend/internal/application/signup"
	userapp "gitlab.com/campusfound/campusfound-backend/internal/application/user"
	verificationquery "gitlab.com/campusfound/campusfound-backend/internal/application/verification/query"
	authhttp "gitlab.com/campusfound/campusfound-backend/internal/ports/http/auth"
	itemhttp "gitlab.com/campusfound/campusfound-backend/internal/ports/http/item"
	"gitlab.com/campusfound/campusfound-backend/internal/ports/http/middlewares"
	signuphttp "gitlab.com/campusfound/campusfound-backend/internal/ports/http/signup"
	userhttp "gitlab.com/campusfound/campusfound-backend/internal/ports/http/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/httpx"
)

type Port struct {
	signup *signuphttp.HTTP
	auth   *authhttp.HTTP
	user   *userhttp.HTTP
	item   *itemhttp.HTTP
}

type Args struct {
	SignupApp    *signupapp.App
	AuthApp      *authapp.App
	UserApp      *userapp.App
	ItemApp      *itemapp.App
	CodeQuery    *verificationquery.GetVerificationCodeHandler
	AccessSecret []byte
	CookieDomain string
}

func NewPort(args Args) *Port {
	errhandler := httpx.NewErrorHandler()
	middleware := middlewares.NewMiddleware(middlewares.Args{
		Secret:     args.AccessSecret,
		Errhandler: errhandler,
	})

	return &Port{
		signup: signuphttp.NewHTTP(signuphttp.Args{
			App:          args.SignupApp,
			CodeQuery:    args.CodeQuery,
			Errhandler:   errhandler,
			CookieDomain: args.CookieDomain,
		}),
		auth: authhttp.NewHTTP(authhttp.Args{
			App:          args.AuthApp,
			Errhandler:   errhandler,
			CookieDomain: args.CookieDomain,
		}),
		user: userhttp.NewHTTP(userhttp.Args{
			UserApp:    args.UserApp,
			Middleware: middleware,
			Errhandler: errhandler,
		}),
		item: itemhttp.NewHTTP(itemhttp.Args{
			ItemApp:    args.ItemApp,
			Middleware: middleware,
			Errhandler: errhandler,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	p.signup.Route(r)
	p.auth.Route(r)
	p.user.Route(r)
	p.item.Route(r)

	return r
}
