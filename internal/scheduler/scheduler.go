package scheduler

import (
	"context"
	"fmt"
	"log"

	"LifeMarket/internal/collector"
	"LifeMarket/internal/model"
	"LifeMarket/internal/notifier"
	"LifeMarket/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic digest and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Sender
	Recorder  recorder.Recorder
	Timeframe model.Timeframe
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. notifier may be nil to skip delivery.
func NewScheduler(ctx context.Context, col *collector.Collector, n Sender, rec recorder.Recorder, tf model.Timeframe) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Timeframe: tf,
		Ctx:       ctx,
	}
}

// Register adds the digest task on digestCron (six fields, seconds first).
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest immediately (for RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running digest task")
	reports, err := s.Collector.CollectAll(s.Ctx, s.Timeframe)
	if err != nil {
		log.Printf("[ERROR] digest collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Digest failed: %v", err))
		return
	}
	for _, rep := range reports {
		prev := s.lastSnapshot(rep.Session.ID)
		s.record(rep)
		s.trySend(notifier.FormatReport(rep, prev))
	}
	log.Printf("[INFO] digest finished: %d sessions", len(reports))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string, args []string) string {
	switch command {
	case "/sessions":
		sessions, err := s.Collector.Source.List(ctx)
		if err != nil {
			log.Printf("[ERROR] list sessions: %v", err)
			return fmt.Sprintf("❌ Could not list sessions: %v", err)
		}
		return notifier.FormatSessionList(sessions)
	case "/report":
		if len(args) == 0 {
			return "Usage: /report &lt;session id&gt; [1H|4H|1D]"
		}
		tf := s.Timeframe
		if len(args) > 1 {
			parsed, err := model.ParseTimeframe(args[1])
			if err != nil {
				return fmt.Sprintf("❌ %v", err)
			}
			tf = parsed
		}
		rep, err := s.Collector.Collect(ctx, args[0], tf)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		prev := s.lastSnapshot(rep.Session.ID)
		s.record(rep)
		return notifier.FormatReport(rep, prev)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) lastSnapshot(sessionID string) *model.Snapshot {
	snaps, err := s.Recorder.Recent(sessionID, 1)
	if err != nil {
		log.Printf("[WARN] load previous snapshot for %s: %v", sessionID, err)
		return nil
	}
	if len(snaps) == 0 {
		return nil
	}
	return &snaps[0]
}

func (s *Scheduler) record(rep *model.MarketReport) {
	if err := s.Recorder.RecordSnapshot(rep.Snapshot()); err != nil {
		log.Printf("[ERROR] record snapshot for %s: %v", rep.Session.ID, err)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
