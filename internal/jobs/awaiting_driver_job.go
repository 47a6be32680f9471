package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultAwaitingDriverSchedule  = "0 * * * * *"
	DefaultAwaitingDriverThreshold = 10 * time.Minute
)

type awaitingDriverLister interface {
	Handle(ctx context.Context, query queries.ListAwaitingDriverQuery) ([]queries.OrderSummary, error)
}

// AwaitingDriverJob reports accepted orders that have waited longer than the
// threshold for a driver. An order is reported once per wait: a released order
// that is accepted again starts a new wait.
type AwaitingDriverJob struct {
	lister    awaitingDriverLister
	notifier  ports.Notifier
	schedule  string
	threshold time.Duration
	pageSize  int
	now       func() time.Time

	cron   *cron.Cron
	logger *slog.Logger

	mu       sync.Mutex
	reported map[string]time.Time
}

func NewAwaitingDriverJob(
	lister awaitingDriverLister,
	notifier ports.Notifier,
	schedule string,
	threshold time.Duration,
	logger *slog.Logger,
) *AwaitingDriverJob {
	if schedule == "" {
		schedule = DefaultAwaitingDriverSchedule
	}
	if threshold <= 0 {
		threshold = DefaultAwaitingDriverThreshold
	}
	return &AwaitingDriverJob{
		lister:    lister,
		notifier:  notifier,
		schedule:  schedule,
		threshold: threshold,
		pageSize:  queries.MaxListLimit,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "awaiting_driver_job"),
		reported:  make(map[string]time.Time),
	}
}

// Start schedules the scan.
func (j *AwaitingDriverJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Awaiting driver job started", "schedule", j.schedule, "threshold", j.threshold)
	return nil
}

// Stop unschedules the scan and waits for a running one to finish.
func (j *AwaitingDriverJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Awaiting driver job stopped")
}

// Run performs one scan and returns the number of notifications sent.
func (j *AwaitingDriverJob) Run(ctx context.Context) int {
	now := j.now().UTC()
	stale, err := j.scan(ctx, now.Add(-j.threshold))
	if err != nil {
		j.logger.ErrorContext(ctx, "Awaiting driver scan failed", "error", err)
		return 0
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	seen := make(map[string]time.Time, len(stale))
	sent := 0
	for _, s := range stale {
		key := s.ID.String()
		seen[key] = s.UpdatedAt
		if at, ok := j.reported[key]; ok && at.Equal(s.UpdatedAt) {
			continue
		}

		j.notifier.Notify(ctx, ports.Event{
			Type:         ports.EventOrderAwaitingDriver,
			OrderID:      s.ID,
			CustomerID:   s.CustomerID,
			RestaurantID: s.RestaurantID,
			Status:       s.Status,
			OccurredAt:   now,
		})
		sent++
	}
	// The scan covers every stale order, so anything missing was claimed or canceled.
	j.reported = seen

	if sent > 0 {
		j.logger.InfoContext(ctx, "Orders awaiting a driver reported", "count", sent)
	}
	return sent
}

// scan pages through all stale orders. A failed page fails the whole scan so that a
// partial result never clears what was already reported.
func (j *AwaitingDriverJob) scan(ctx context.Context, acceptedBefore time.Time) ([]queries.OrderSummary, error) {
	query, err := queries.NewListAwaitingDriverQuery(acceptedBefore, j.pageSize)
	if err != nil {
		return nil, err
	}

	var stale []queries.OrderSummary
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := j.lister.Handle(ctx, query)
		if err != nil {
			return nil, err
		}
		stale = append(stale, page...)
		if len(page) < j.pageSize {
			return stale, nil
		}
		query = query.After(page[len(page)-1])
	}
}
