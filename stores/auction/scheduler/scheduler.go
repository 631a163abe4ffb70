package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/goroutine"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

var (
	metOnce sync.Once
	met     metrics.Service
)

const (
	defaultInterval  = 10 * time.Second
	defaultBatchSize = 100
)

type SchedulerCfg struct {
	Interval       time.Duration
	AuctionUseCase auction.UseCase
	BatchSize      int
}

// Report counts what one tick did
type Report struct {
	Started int
	Ended   int
	Skipped int
	Failed  int
}

func (r Report) IsZero() bool {
	return r == Report{}
}

// Scheduler opens auctions whose start date passed and closes the expired ones
type Scheduler struct {
	interval  time.Duration
	auction   auction.UseCase
	batchSize int
	stoppedCh chan interface{}
}

func New(cfg *SchedulerCfg) *Scheduler {
	metOnce.Do(func() {
		met = metrics.New("scheduler")
	})
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Scheduler{
		interval:  interval,
		auction:   cfg.AuctionUseCase,
		batchSize: batchSize,
		stoppedCh: make(chan interface{}),
	}
}

func (s *Scheduler) Start(c ctx.Ctx) {
	c = ctx.WithLogFields(c, log.Fields{"worker": "scheduler"})
	go func() {
		defer close(s.stoppedCh)
		for {
			// a panic in one tick must not stop the next ones
			<-goroutine.RecoverableGo(func() {
				s.loop(c)
			}, goroutine.WithName("scheduler"), goroutine.WithLogger(c.Logger))

			select {
			case <-c.Done():
				return
			case <-time.After(s.interval):
			}
		}
	}()
}

func (s *Scheduler) Wait() {
	<-s.stoppedCh
}

func (s *Scheduler) loop(c ctx.Ctx) {
	nextTick := time.Duration(0)
	for {
		select {
		case <-c.Done():
			c.Info("scheduler stopped")
			return
		case <-time.After(nextTick):
			// a sweep in flight finishes even if c gets cancelled meanwhile
			report := s.RunOnce(ctx.Detach(c))
			if !report.IsZero() {
				c.WithFields(log.Fields{
					"started": report.Started,
					"ended":   report.Ended,
					"skipped": report.Skipped,
					"failed":  report.Failed,
				}).Info("scheduler tick")
			}
			nextTick = s.interval
		}
	}
}

// RunOnce runs the start sweep then the close sweep
func (s *Scheduler) RunOnce(c ctx.Ctx) Report {
	defer met.BumpTime("tick.time").End()

	report := Report{}
	s.sweep(c, "start", s.auction.FindDueToStart, s.auction.Start, &report.Started, &report)
	s.sweep(c, "end", s.auction.FindExpiredActive, s.auction.End, &report.Ended, &report)

	met.BumpSum("started", float64(report.Started))
	met.BumpSum("ended", float64(report.Ended))
	met.BumpSum("skipped", float64(report.Skipped))
	met.BumpSum("failed", float64(report.Failed))
	return report
}

type finder func(c ctx.Ctx, limit int) ([]*auction.Auction, error)

type transition func(c ctx.Ctx, id string) (*auction.Auction, error)

func (s *Scheduler) sweep(c ctx.Ctx, name string, find finder, apply transition, done *int, report *Report) {
	due, err := find(c, s.batchSize)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "sweep": name}).Error("find failed")
		report.Failed++
		return
	}

	for _, a := range due {
		_, err := apply(c, a.Id)
		switch {
		case err == nil:
			*done++
		case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrNotFound):
			// moved by a concurrent request since the query
			report.Skipped++
		default:
			c.WithFields(log.Fields{"err": err, "sweep": name, "auctionId": a.Id}).Error("transition failed")
			report.Failed++
		}
	}
}
