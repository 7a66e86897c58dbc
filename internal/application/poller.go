package application

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval matches the reference deployment's 10 second feed poll.
const DefaultPollInterval = 10 * time.Second

// NotificationFeed is the read side of the mailbox the poller re-queries.
type NotificationFeed interface {
	ListFor(ctx context.Context, recipientID string, role Role) ([]AppNotification, error)
}

// Poller re-queries one recipient's notification feed at a fixed interval and
// hands each snapshot to the handler. It owns its ticker and stops it when the
// context is cancelled or Stop is called, so a torn-down view never leaks a
// timer.
type Poller struct {
	feed        NotificationFeed
	recipientID string
	role        Role
	interval    time.Duration
	handler     func([]AppNotification)
	logger      *slog.Logger

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewPoller constructs a poller. A non-positive interval falls back to
// DefaultPollInterval; a nil handler drops snapshots.
func NewPoller(feed NotificationFeed, recipientID string, role Role, interval time.Duration, handler func([]AppNotification), logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if handler == nil {
		handler = func([]AppNotification) {}
	}
	return &Poller{
		feed:        feed,
		recipientID: recipientID,
		role:        role,
		interval:    interval,
		handler:     handler,
		logger:      defaultLogger(logger),
		stopped:     make(chan struct{}),
	}
}

// Run polls until the context is cancelled or Stop is called. The first
// snapshot is delivered immediately so a freshly mounted view is not blank
// for a full interval; a poller that was already stopped or cancelled never
// delivers at all. Run returns only after the ticker is released.
func (p *Poller) Run(ctx context.Context) {
	if p == nil || p.feed == nil {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-p.stopped:
		return
	default:
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.deliver(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopped:
			return
		case <-ticker.C:
			p.deliver(ctx)
		}
	}
}

// Stop terminates a running Run. Stop is idempotent and safe to call before
// Run starts.
func (p *Poller) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() { close(p.stopped) })
}

func (p *Poller) deliver(ctx context.Context) {
	feed, err := p.feed.ListFor(ctx, p.recipientID, p.role)
	if err != nil {
		serviceLogger(ctx, p.logger, "Poller", "deliver", "recipient_id", p.recipientID).
			ErrorContext(ctx, "failed to poll notifications", "error", err, "error_kind", ErrorKind(err))
		return
	}
	p.handler(feed)
}
