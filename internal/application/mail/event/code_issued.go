package mailevent

import (
	"context"
	"fmt"
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

const CodeIssuedSubject = "Your verification code"

func (h *MailEventHandler) HandleCodeIssued(ctx context.Context, e *verification.CodeIssued) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleCodeIssued"

	l := h.logger.With(slog.String("event", "CodeIssued"), slog.String("verification.id", e.RecordID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleCodeIssued",
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
		Subject: CodeIssuedSubject,
		HTML:    verificationCodeHTML(e.Code),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send verification code email")
		l.ErrorContext(ctx, "failed to send verification code email", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}

func verificationCodeHTML(code string) string {
	return fmt.Sprintf(`<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
  <h2>Verify your email</h2>
  <p>Your verification code is:</p>
  <p style="font-size:32px;font-weight:bold;letter-spacing:6px">%s</p>
  <p>This code expires in 2 minutes. If you did not request it, you can ignore this message.</p>
</div>`, code)
}
