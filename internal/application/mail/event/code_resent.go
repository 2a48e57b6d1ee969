package mailevent

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/mails"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

const CodeResentSubject = "Your new verification code"

func (h *MailEventHandler) HandleCodeResent(ctx context.Context, e *verification.CodeResent) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleCodeResent"

	l := h.logger.With(slog.String("event", "CodeResent"), slog.String("verification.id", e.RecordID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleCodeResent",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.verification.id", e.RecordID.String()),
			attribute.String("event.verification.email", logging.RedactEmail(e.Email)),
		),
	)
	defer span.End()

	err := validation.ValidateStruct(e,
		validation.Field(&e.Email, validation.Required, is.EmailFormat),
		validation.Field(&e.Code, validation.Required),
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "validation failed")
		l.ErrorContext(ctx, "validation failed", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: CodeResentSubject,
		HTML:    verificationCodeHTML(e.Code),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send resent code email")
		l.ErrorContext(ctx, "failed to send resent code email", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}
