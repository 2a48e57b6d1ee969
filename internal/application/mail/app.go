package mail

import (
	mailevent "gitlab.com/campusfound/campusfound-backend/internal/application/mail/event"
)

type App struct {
	Event *mailevent.MailEventHandler
}

type Args struct {
	Mailsender mailevent.MailSender
	AppBaseURL string
}

func NewApp(args Args) *App {
	return &App{
		Event: mailevent.NewMailEventHandler(mailevent.MailEventHandlerArgs{
			Mailsender: args.Mailsender,
			AppBaseURL: args.AppBaseURL,
		}),
	}
}
