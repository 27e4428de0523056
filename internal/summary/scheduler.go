package summary

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"goldpan/internal/sheetlog"
)

// Scheduler runs the daily digest job.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
}

// NewScheduler interprets the cron spec in the log's fixed UTC+8 zone,
// so an end-of-day schedule covers the same "today" the digest filters by.
func NewScheduler(spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(sheetlog.LogLocation())),
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetReportFunction sets the job body.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

func (s *Scheduler) Start() error {
	if s.reportFunc == nil {
		log.Println("⚠️ report function not set, scheduler will not generate digests")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("🕘 triggered daily digest (%s)", s.spec)
		if err := s.reportFunc(s.ctx); err != nil {
			log.Printf("❌ daily digest failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 scheduler started, daily digest at cron %q (UTC+8)", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 scheduler stopped")
}
