package itemcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("campusfound/internal/application/item/cmd")
	logger = otelslog.NewLogger("campusfound/internal/application/item/cmd")
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Report struct {
	ReporterID  user.ID
	Kind        item.Kind
	Name        string
	Description string
	Location    string

	Photo            io.Reader
	PhotoSize        int64
	PhotoContentType string
}

type ReportHandler struct {
	tracer       trace.Tracer
	logger       *slog.Logger
	repo         ItemRepo
	storage      PhotoStorage
	photoBaseURL string
}

type ReportHandlerArgs struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	ItemRepo     ItemRepo
	Storage      PhotoStorage
	PhotoBaseURL string
}

func NewReportHandler(args ReportHandlerArgs) *ReportHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ReportHandler{
		tracer:       args.Tracer,
		logger:       args.Logger,
		repo:         args.ItemRepo,
		storage:      args.Storage,
		photoBaseURL: args.PhotoBaseURL,
	}
}

func (h *ReportHandler) Handle(ctx context.Context, cmd Report) (*item.Item, error) {
	const op = "itemcmd.ReportHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ReportHandler.Handle", trace.WithAttributes(
		attribute.String("reporter.id", cmd.ReporterID.String()),
		attribute.String("item.kind", cmd.Kind.String()),
	))
	defer span.End()

	photoURL := ""
	if cmd.Photo != nil {
		if err := h.validatePhoto(cmd.PhotoContentType, cmd.PhotoSize); err != nil {
			otelx.RecordSpanError(span, err, "invalid item photo")
			return nil, errorx.Wrap(err, op)
		}

		key := fmt.Sprintf("items/%s/%d", cmd.ReporterID.String(), time.Now().UnixMilli())
		if err := h.storage.UploadFile(ctx, key, cmd.Photo, cmd.PhotoContentType); err != nil {
			otelx.RecordSpanError(span, err, "failed to upload item photo")
			return nil, errorx.Wrap(err, op)
		}
		span.AddEvent("uploaded item photo", trace.WithAttributes(attribute.String("storage.key", key)))

		photoURL = fmt.Sprintf("%s/%s", h.photoBaseURL, key)
	}

	it, err := item.NewItem(item.NewItemArgs{
		ReporterID:  cmd.ReporterID,
		Kind:        cmd.Kind,
		Name:        cmd.Name,
		Description: cmd.Description,
		Location:    cmd.Location,
		PhotoURL:    photoURL,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create item")
		return nil, errorx.Wrap(err, op)
	}

	if err := h.repo.SaveItem(ctx, it); err != nil {
		otelx.RecordSpanError(span, err, "failed to save item")
		return nil, errorx.Wrap(err, op)
	}
	span.AddEvent("item reported", trace.WithAttributes(attribute.String("item.id", it.ID().String())))

	return it, nil
}

func (h *ReportHandler) validatePhoto(contentType string, size int64) error {
	if !allowedPhotoTypes[contentType] {
		return item.ErrInvalidFileType.WithArgs(map[string]any{"List": "image/jpeg, image/png, image/webp"})
	}
	if size > item.MaxPhotoSize {
		return item.ErrPhotoTooLarge.WithArgs(map[string]any{"Threshold": item.MaxPhotoSize / (1024 * 1024), "Unit": "MB"})
	}
	if size < item.MinPhotoSize {
		return item.ErrPhotoTooSmall.WithArgs(map[string]any{"Threshold": item.MinPhotoSize, "Unit": "bytes"})
	}
	return nil
}
