package jobs

import (
	"context"
	"time"

	"github.com/straye-as/calltracker-api/internal/logger"
	"go.uber.org/zap"
)

// CallReminderJobName is the scheduler name of the call soon reminder job
const CallReminderJobName = "call_reminder"

// ReminderSender issues call soon notifications. It is satisfied by
// service.NotificationService.
type ReminderSender interface {
	SendCallReminders(ctx context.Context) (int, error)
}

// CallReminderJob notifies users about calls starting within the next hour
type CallReminderJob struct {
	sender  ReminderSender
	logger  *zap.Logger
	timeout time.Duration
}

// NewCallReminderJob creates the reminder job. Each run is bounded by timeout.
func NewCallReminderJob(sender ReminderSender, log *zap.Logger, timeout time.Duration) *CallReminderJob {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CallReminderJob{
		sender:  sender,
		logger:  logger.WithJob(log, CallReminderJobName),
		timeout: timeout,
	}
}

// Run sends any due reminders. It is called by the scheduler.
func (j *CallReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	sent, err := j.sender.SendCallReminders(ctx)
	if err != nil {
		j.logger.Error("call reminder job failed",
			zap.Int("sent", sent),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Debug("call reminder job completed",
		zap.Int("sent", sent),
		zap.Duration("duration", time.Since(start)))
}

// Register adds the job to scheduler using cronExpr
func (j *CallReminderJob) Register(scheduler *Scheduler, cronExpr string) error {
	return scheduler.AddJob(CallReminderJobName, cronExpr, j.Run)
}
