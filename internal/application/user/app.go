package userapp

import (
	usercmd "gitlab.com/campusfound/campusfound-backend/internal/application/user/cmd"
	userevent "gitlab.com/campusfound/campusfound-backend/internal/application/user/event"
	userquery "gitlab.com/campusfound/campusfound-backend/internal/application/user/query"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

type App struct {
	Command Command
	Query   Query
	Event   Event
}

type Command struct {
	UpdateAvatar           *usercmd.UpdateAvatarHandler
	DeleteAvatar           *usercmd.DeleteAvatarHandler
	ChangePasswordStart    *usercmd.ChangePasswordStartHandler
	ChangePasswordComplete *usercmd.ChangePasswordCompleteHandler
}

type Query struct {
	GetProfile *userquery.GetProfileHandler
}

type Event struct {
	AvatarUpdated *userevent.AvatarUpdatedHandler
}

type Args struct {
	AvatarBaseURL string
	AvatarStorage usercmd.AvatarStorage
	UserRepo      usercmd.UserRepo
	UserGetter    userquery.UserGetter
	CodeIssuer    usercmd.CodeIssuer
	CodeChecker   usercmd.CodeChecker
	ProfileCache  userquery.ProfileCache
	CacheClearer  userevent.ProfileCacheClearer
}

func NewApp(args Args) *App {
	avatarService := user.NewAvatarService(args.AvatarBaseURL)

	return &App{
		Command: Command{
			UpdateAvatar: usercmd.NewUpdateAvatarHandler(usercmd.UpdateAvatarHandlerArgs{
				AvatarDomainService: avatarService,
				Storage:             args.AvatarStorage,
				UserRepo:            args.UserRepo,
			}),
			DeleteAvatar: usercmd.NewDeleteAvatarHandler(usercmd.DeleteAvatarHandlerArgs{
				AvatarDomainService: avatarService,
				Storage:             args.AvatarStorage,
				UserRepo:            args.UserRepo,
			}),
			ChangePasswordStart: usercmd.NewChangePasswordStartHandler(usercmd.ChangePasswordStartHandlerArgs{
				UserRepo:   args.UserRepo,
				CodeIssuer: args.CodeIssuer,
			}),
			ChangePasswordComplete: usercmd.NewChangePasswordCompleteHandler(usercmd.ChangePasswordCompleteHandlerArgs{
				UserRepo:    args.UserRepo,
				CodeChecker: args.CodeChecker,
			}),
		},
		Query: Query{
			GetProfile: userquery.NewGetProfileHandler(userquery.GetProfileHandlerArgs{
				UserGetter: args.UserGetter,
				Cache:      args.ProfileCache,
			}),
		},
		Event: Event{
			AvatarUpdated: userevent.NewAvatarUpdatedHandler(args.CacheClearer),
		},
	}
}
