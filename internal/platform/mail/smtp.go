package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPTransport relays mail through an authenticated SMTP submission server.
type SMTPTransport struct {
	cfg  Config
	now  func() time.Time
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

var _ Transport = (*SMTPTransport)(nil)

func NewSMTPTransport(cfg Config) *SMTPTransport {
	dialer := &net.Dialer{}
	return &SMTPTransport{cfg: cfg, now: time.Now, dial: dialer.DialContext}
}

func (t *SMTPTransport) Mode() Mode { return ModeSMTP }

// Send delivers env in a single SMTP session bounded by ctx.
func (t *SMTPTransport) Send(ctx context.Context, env Envelope) (Receipt, error) {
	messageID := t.newMessageID()
	msg, err := buildMessage(env, messageID, t.now())
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: build message: %v", ErrDelivery, err)
	}

	client, err := t.connect(ctx)
	if err != nil {
		return Receipt{}, err
	}
	defer client.Close()

	if err := client.Mail(bareAddress(env.From)); err != nil {
		return Receipt{}, fmt.Errorf("%w: MAIL FROM: %v", ErrDelivery, err)
	}
	if err := client.Rcpt(bareAddress(env.To)); err != nil {
		return Receipt{}, fmt.Errorf("%w: RCPT TO: %v", ErrDelivery, err)
	}
	w, err := client.Data()
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: DATA: %v", ErrDelivery, err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return Receipt{}, fmt.Errorf("%w: write body: %v", ErrDelivery, err)
	}
	if err := w.Close(); err != nil {
		return Receipt{}, fmt.Errorf("%w: end DATA: %v", ErrDelivery, err)
	}
	_ = client.Quit()

	return Receipt{MessageID: messageID, Response: "accepted"}, nil
}

// Verify opens a session, authenticates and quits without sending anything.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	client, err := t.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.Quit(); err != nil {
		return fmt.Errorf("%w: QUIT: %v", ErrDelivery, err)
	}
	return nil
}

func (t *SMTPTransport) connect(ctx context.Context) (*smtp.Client, error) {
	addr := t.cfg.addr()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	conn, err := t.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrDelivery, addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: greeting: %v", ErrDelivery, err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%w: STARTTLS: %v", ErrDelivery, err)
		}
	}
	if !t.cfg.Configured() {
		return client, nil
	}
	if ok, _ := client.Extension("AUTH"); !ok {
		_ = client.Close()
		return nil, fmt.Errorf("%w: server %s does not offer AUTH", ErrDelivery, host)
	}
	auth := smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, host)
	if err := client.Auth(auth); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: AUTH: %v", ErrDelivery, err)
	}
	return client, nil
}

func (t *SMTPTransport) newMessageID() string {
	domain := "localhost"
	if at := strings.LastIndex(t.cfg.Username, "@"); at >= 0 && at < len(t.cfg.Username)-1 {
		domain = t.cfg.Username[at+1:]
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}

// buildMessage renders a multipart/alternative RFC 5322 message.
func buildMessage(env Envelope, messageID string, at time.Time) ([]byte, error) {
	var body bytes.Buffer
	parts := multipart.NewWriter(&body)

	if err := writePart(parts, "text/plain; charset=UTF-8", env.TextBody); err != nil {
		return nil, err
	}
	if err := writePart(parts, "text/html; charset=UTF-8", env.HTMLBody); err != nil {
		return nil, err
	}
	if err := parts.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	writeHeader(&msg, "From", env.From)
	writeHeader(&msg, "To", env.To)
	if env.ReplyTo != "" {
		writeHeader(&msg, "Reply-To", env.ReplyTo)
	}
	writeHeader(&msg, "Subject", mime.QEncoding.Encode("utf-8", headerValue(env.Subject)))
	writeHeader(&msg, "Date", at.Format(time.RFC1123Z))
	writeHeader(&msg, "Message-ID", messageID)
	writeHeader(&msg, "MIME-Version", "1.0")
	writeHeader(&msg, "Content-Type", "multipart/alternative; boundary="+parts.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// writePart adds a quoted-printable part; encoded lines stay under the
// 998-octet limit.
func writePart(parts *multipart.Writer, contentType, content string) error {
	part, err := parts.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(content)); err != nil {
		return err
	}
	return qp.Close()
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(headerValue(value))
	buf.WriteString("\r\n")
}

// headerValue folds line breaks so user-supplied text cannot start a new header.
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}

func bareAddress(addr string) string {
	if start := strings.LastIndex(addr, "<"); start >= 0 {
		if end := strings.LastIndex(addr, ">"); end > start {
			return addr[start+1 : end]
		}
	}
	return strings.TrimSpace(addr)
}
