package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/mails"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
)

var logger = otelslog.NewLogger("campusfound/internal/adapters/services/mailer")

const sendTimeout = 10 * time.Second

// Client delivers mail through the relay's POST /api/send-email endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, l *slog.Logger) *Client {
	if l == nil {
		l = logger
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   sendTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: l,
	}
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (c *Client) SendMail(ctx context.Context, payload mails.Payload) error {
	const op = "mailer.Client.SendMail"

	body, err := json.Marshal(sendRequest{
		To:      payload.To,
		Subject: payload.Subject,
		HTML:    payload.HTML,
	})
	if err != nil {
		return errorx.Wrap(err, op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send-email", bytes.NewReader(body))
	if err != nil {
		return errorx.Wrap(err, op)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorx.Wrap(err, op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.ErrorContext(ctx, "mail relay rejected message",
			slog.Int("status", resp.StatusCode),
			slog.String("to", logging.RedactEmail(payload.To)),
		)
		return errorx.Wrap(
			errorx.NewUpstreamError().WithCause(fmt.Errorf("mail relay returned %d: %s", resp.StatusCode, respBody)),
			op,
		)
	}

	return nil
}
