package mailevent

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/mails"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

const UserRegisteredSubject = "Welcome to CampusFound"

func (h *MailEventHandler) HandleUserRegistered(ctx context.Context, e *user.Registered) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleUserRegistered"

	l := h.logger.With(slog.String("event", "UserRegistered"), slog.String("user.id", e.UserID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleUserRegistered",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.user.id", e.UserID.String()),
			attribute.String("event.user.email", logging.RedactEmail(e.Email)),
		),
	)
	defer span.End()

	payload := mails.Payload{
		To:      e.Email,
		Subject: UserRegisteredSubject,
		HTML: fmt.Sprintf(`<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
  <h2>Welcome, %s!</h2>
  <p>Your account is ready. You can now report lost items, browse found ones, and get match suggestions.</p>
  <p><a href="%s">Open CampusFound</a></p>
</div>`, e.FirstName, h.appBaseURL),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send welcome email")
		l.ErrorContext(ctx, "failed to send welcome email", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}
