package mail

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// ConsoleResponse is reported for every message the console transport accepts.
const ConsoleResponse = "Email logged to console"

// ConsoleTransport writes envelopes to the log instead of sending them.
type ConsoleTransport struct {
	logger *slog.Logger
	now    func() time.Time
}

var _ Transport = (*ConsoleTransport)(nil)

func NewConsoleTransport(logger *slog.Logger) *ConsoleTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleTransport{logger: logger.With(slog.String("transport", string(ModeConsole))), now: time.Now}
}

func (t *ConsoleTransport) Mode() Mode { return ModeConsole }

func (t *ConsoleTransport) Send(ctx context.Context, env Envelope) (Receipt, error) {
	messageID := "console-" + strconv.FormatInt(t.now().UnixMilli(), 10)
	t.logger.LogAttrs(ctx, slog.LevelInfo, "email logged to console",
		slog.String("message_id", messageID),
		slog.String("to", env.To),
		slog.String("from", env.From),
		slog.String("reply_to", env.ReplyTo),
		slog.String("subject", env.Subject),
		slog.String("body", env.TextBody),
	)
	return Receipt{
		MessageID: messageID,
		Response:  ConsoleResponse,
	}, nil
}

func (t *ConsoleTransport) Verify(context.Context) error { return nil }
