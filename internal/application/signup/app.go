package signup

import (
	"gitlab.com/campusfound/campusfound-backend/internal/application/signup/cmd"
)

type App struct {
	CMD Command
}

type Command struct {
	Start    *cmd.StartHandler
	Resend   *cmd.ResendHandler
	Complete *cmd.CompleteHandler
}

type Args struct {
	UserGetter  cmd.UserGetter
	UserSaver   cmd.UserSaver
	CodeIssuer  cmd.CodeIssuer
	CodeChecker cmd.CodeChecker
	TokenIssuer cmd.TokenIssuer
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			Start: cmd.NewStartHandler(cmd.StartHandlerArgs{
				UserGetter: args.UserGetter,
				CodeIssuer: args.CodeIssuer,
			}),
			Resend: cmd.NewResendHandler(cmd.ResendHandlerArgs{
				UserGetter: args.UserGetter,
				CodeIssuer: args.CodeIssuer,
			}),
			Complete: cmd.NewCompleteHandler(cmd.CompleteHandlerArgs{
				UserGetter:  args.UserGetter,
				UserSaver:   args.UserSaver,
				CodeChecker: args.CodeChecker,
				TokenIssuer: args.TokenIssuer,
			}),
		},
	}
}
