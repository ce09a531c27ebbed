// Package scheduler runs the monthly commission computation.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/infrastructure/mailer"
	"crediasesor-backoffice/internal/usecase/commission"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Computer interface {
	Compute(ctx context.Context, in commission.ComputeInput) (*commission.ComputeResult, error)
}

type ReportMailer interface {
	SendReport(ctx context.Context, r mailer.Report) error
}

type Scheduler struct {
	cron    *cron.Cron
	comp    Computer
	mail    ReportMailer
	now     func() time.Time
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option { return func(s *Scheduler) { s.now = now } }

// WithMailer sends every generated report; nil disables mailing.
func WithMailer(m ReportMailer) Option { return func(s *Scheduler) { s.mail = m } }

func WithTimeout(d time.Duration) Option { return func(s *Scheduler) { s.timeout = d } }

// DefaultTimeout bounds one scheduled run.
const DefaultTimeout = 5 * time.Minute

// New registers the job under a standard five-field cron spec evaluated in UTC.
func New(spec string, comp Computer, log *zap.Logger, opts ...Option) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		comp:    comp,
		now:     time.Now,
		timeout: DefaultTimeout,
		log:     log,
	}
	for _, o := range opts {
		o(s)
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("scheduler spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("commission scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for a running computation to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_ = s.RunOnce(ctx)
}

// PreviousPeriod is the YYYY-MM before the month of now, in UTC.
func PreviousPeriod(now time.Time) string {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format("2006-01")
}

// RunOnce computes the previous month. Informational outcomes (already
// computed, nothing to pay) are logged and are not errors.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	period := PreviousPeriod(s.now())
	res, err := s.comp.Compute(ctx, commission.ComputeInput{Period: period})
	var oe *domain.OutcomeError
	if errors.As(err, &oe) {
		s.log.Info("scheduled commission run skipped",
			zap.String("periodo", period), zap.String("tipo", string(oe.Kind)))
		return nil
	}
	if err != nil {
		s.log.Error("scheduled commission run failed", zap.String("periodo", period), zap.Error(err))
		return err
	}
	s.log.Info("scheduled commission run done",
		zap.String("periodo", period),
		zap.Int("rows", res.Rows),
		zap.String("total", res.TotalCommission.String()))

	if s.mail == nil {
		return nil
	}
	return s.mail.SendReport(ctx, mailer.Report{
		Period:   period,
		Summary:  fmt.Sprintf("%s\nRegistros: %d\nTotal: %s", res.Message, res.Rows, commission.FormatCOP(res.TotalCommission)),
		FileName: res.File.Name,
		Content:  []byte(res.File.Content),
	})
}
