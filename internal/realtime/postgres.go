package realtime

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// NotifyChannel is the postgres NOTIFY channel the row triggers publish on.
// Payload format: "<table>:<owner uuid>".
const NotifyChannel = "row_changes"

// PostgresListener bridges postgres NOTIFY events onto a Bus. Any session
// mutating a user's cart rows fires the trigger, so every server instance
// sees the change regardless of which one wrote it.
type PostgresListener struct {
	listener *pq.Listener
	bus      *Bus
	logger   *zap.Logger
}

// NewPostgresListener opens a dedicated listening connection on dsn
func NewPostgresListener(dsn string, bus *Bus, logger *zap.Logger) *PostgresListener {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("Realtime listener connection event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})

	return &PostgresListener{
		listener: listener,
		bus:      bus,
		logger:   logger,
	}
}

// Run listens until ctx is cancelled. Notifications are parsed and republished
// on the bus; malformed payloads are logged and dropped.
func (l *PostgresListener) Run(ctx context.Context) error {
	if err := l.listener.Listen(NotifyChannel); err != nil {
		return err
	}
	defer l.listener.Close()

	l.logger.Info("Realtime listener started", zap.String("channel", NotifyChannel))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-l.listener.Notify:
			if n == nil {
				// Connection was re-established; subscribers recount on the
				// next periodic resync, nothing to replay here.
				continue
			}
			change, ok := parsePayload(n.Extra)
			if !ok {
				l.logger.Warn("Dropping malformed realtime payload", zap.String("payload", n.Extra))
				continue
			}
			l.bus.Publish(change)
		case <-time.After(90 * time.Second):
			// Keep the connection verified during quiet periods
			if err := l.listener.Ping(); err != nil {
				l.logger.Warn("Realtime listener ping failed", zap.Error(err))
			}
		}
	}
}

func parsePayload(payload string) (Change, bool) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return Change{}, false
	}
	ownerID, err := uuid.Parse(parts[1])
	if err != nil {
		return Change{}, false
	}
	return Change{Table: parts[0], OwnerID: ownerID}, true
}
