package verification

import (
	"context"

	"gitlab.com/campusfound/campusfound-backend/internal/application/verification/cmd"
)

// IssueCode lets other contexts request a code without depending on the
// handler types.
func (a *App) IssueCode(ctx context.Context, email string) error {
	return a.CMD.Issue.Handle(ctx, cmd.IssueCode{Email: email})
}

func (a *App) ResendCode(ctx context.Context, email string) error {
	return a.CMD.Resend.Handle(ctx, cmd.ResendCode{Email: email})
}

func (a *App) CheckCode(ctx context.Context, email, code string) error {
	return a.CMD.Check.Handle(ctx, cmd.CheckCode{Email: email, Code: code})
}
