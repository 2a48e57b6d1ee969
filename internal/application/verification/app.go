package verification

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/campusfound/campusfound-backend/internal/application/verification/cmd"
	"gitlab.com/campusfound/campusfound-backend/internal/application/verification/query"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	Issue  *cmd.IssueCodeHandler
	Resend *cmd.ResendCodeHandler
	Check  *cmd.CheckCodeHandler
}

type Query struct {
	GetVerificationCode *query.GetVerificationCodeHandler
}

type Args struct {
	Repo cmd.Repo
	Pool *pgxpool.Pool
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			Issue: cmd.NewIssueCodeHandler(cmd.IssueCodeHandlerArgs{
				Repo: args.Repo,
			}),
			Resend: cmd.NewResendCodeHandler(cmd.ResendCodeHandlerArgs{
				Repo: args.Repo,
			}),
			Check: cmd.NewCheckCodeHandler(cmd.CheckCodeHandlerArgs{
				Repo: args.Repo,
			}),
		},
		Query: Query{
			GetVerificationCode: query.NewGetVerificationCodeHandler(args.Pool),
		},
	}
}
