// Package mail delivers outbound notification email over SMTP, or logs it
// when no credentials are configured.
package mail

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// ErrDelivery marks a failed send or verification against the mail relay.
var ErrDelivery = errors.New("mail: delivery failed")

// Mode names the active transport.
type Mode string

const (
	ModeSMTP    Mode = "smtp"
	ModeConsole Mode = "console"
)

// Envelope is a single rendered message ready for delivery.
type Envelope struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Receipt identifies an accepted message.
type Receipt struct {
	MessageID string
	Response  string
}

// Transport sends envelopes. Implementations must honour ctx deadlines.
type Transport interface {
	Send(ctx context.Context, env Envelope) (Receipt, error)
	Verify(ctx context.Context) error
	Mode() Mode
}

// Config selects and parameterizes a transport.
type Config struct {
	Username string
	Password string
	Host     string
	Port     int
}

const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 587
)

// Configured reports whether both credentials are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Password) != ""
}

func (c Config) addr() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port <= 0 {
		port = DefaultPort
	}
	return host + ":" + strconv.Itoa(port)
}

// New picks the SMTP transport when credentials are configured and the
// console transport otherwise.
func New(cfg Config, logger *slog.Logger) Transport {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Configured() {
		logger.Info("email credentials not configured, messages will be logged to console")
		return NewConsoleTransport(logger)
	}
	logger.Info("email transport configured", slog.String("mode", string(ModeSMTP)), slog.String("addr", cfg.addr()))
	return NewSMTPTransport(cfg)
}
