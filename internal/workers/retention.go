package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

const defaultSweepSchedule = "@hourly"

var (
	tracer = otel.Tracer("campusfound/internal/workers")
	logger = otelslog.NewLogger("campusfound/internal/workers")
)

type RecordDeleter interface {
	DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionSweeper periodically purges verification records older than the
// retention window. Expiry never deletes a record on its own, so without
// the sweep the table only grows.
type RetentionSweeper struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	deleter  RecordDeleter
	cron     *cron.Cron
	schedule string
	age      time.Duration
	now      func() time.Time
}

type RetentionSweeperArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Deleter  RecordDeleter
	Cron     *cron.Cron
	Schedule string
	Age      time.Duration
	Now      func() time.Time
}

func NewRetentionSweeper(args RetentionSweeperArgs) *RetentionSweeper {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}
	if args.Deleter == nil {
		panic("record deleter is required for retention sweeper")
	}
	if args.Cron == nil {
		args.Cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	if args.Schedule == "" {
		args.Schedule = defaultSweepSchedule
	}
	if args.Age == 0 {
		args.Age = verification.RetentionAge
	}
	if args.Now == nil {
		args.Now = time.Now
	}

	return &RetentionSweeper{
		tracer:   args.Tracer,
		logger:   args.Logger,
		deleter:  args.Deleter,
		cron:     args.Cron,
		schedule: args.Schedule,
		age:      args.Age,
		now:      args.Now,
	}
}

func (s *RetentionSweeper) Start() error {
	const op = "workers.RetentionSweeper.Start"
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Warn("verification retention sweep failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return errorx.Wrap(err, op)
	}

	s.cron.Start()
	s.logger.Info("verification retention sweeper started", slog.String("schedule", s.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *RetentionSweeper) Stop() context.Context {
	return s.cron.Stop()
}

func (s *RetentionSweeper) Sweep(ctx context.Context) error {
	const op = "workers.RetentionSweeper.Sweep"
	ctx, span := s.tracer.Start(ctx, "RetentionSweeper.Sweep")
	defer span.End()

	cutoff := s.now().UTC().Add(-s.age)
	deleted, err := s.deleter.DeleteRecordsBefore(ctx, cutoff)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to delete stale verification records")
		return errorx.Wrap(err, op)
	}

	span.SetAttributes(attribute.Int64("records.deleted", deleted))
	s.logger.InfoContext(ctx, "verification retention sweep completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
	return nil
}
