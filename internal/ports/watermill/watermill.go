package watermill

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5/pgxpool"

	mailevent "gitlab.com/campusfound/campusfound-backend/internal/application/mail/event"
	userapp "gitlab.com/campusfound/campusfound-backend/internal/application/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/watermillx"
)

type Port struct {
	eventProcessor *cqrs.EventProcessor
}

type AppEventHandlers struct {
	Mail *mailevent.MailEventHandler
	User userapp.Event
}

func NewPort(router *message.Router, conn *pgxpool.Pool, wmlogger watermill.LoggerAdapter) (*Port, error) {
	eventProcessor, err := watermillx.NewEventProcessor(router, conn, wmlogger)
	if err != nil {
		return nil, err
	}

	return &Port{eventProcessor: eventProcessor}, nil
}

func (p *Port) Run(ctx context.Context, handlers AppEventHandlers) error {
	err := p.eventProcessor.AddHandlers(
		cqrs.NewEventHandler("MailOnVerificationCodeIssued", handlers.Mail.HandleCodeIssued),
		cqrs.NewEventHandler("MailOnVerificationCodeResent", handlers.Mail.HandleCodeResent),
		cqrs.NewEventHandler("MailOnUserRegistered", handlers.Mail.HandleUserRegistered),
		cqrs.NewEventHandler("ProfileCacheOnAvatarUpdated", handlers.User.AvatarUpdated.Handle),
	)
	if err != nil {
		return fmt.Errorf("failed to add event handlers: %w", err)
	}

	return nil
}
