// Package mailer sends commission reports over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

type Config struct {
	Addr string // host:port
	User string
	Pass string
	From string
	To   []string
}

// Report is one generated commission report.
type Report struct {
	Period   string
	Summary  string
	FileName string
	Content  []byte
}

type sendFunc func(e *email.Email, addr string, a smtp.Auth) error

type Mailer struct {
	cfg  Config
	auth smtp.Auth
	send sendFunc
	log  *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mailer{
		cfg:  cfg,
		send: func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) },
		log:  log,
	}
	if cfg.User != "" {
		host, _, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			host = cfg.Addr
		}
		m.auth = smtp.PlainAuth("", cfg.User, cfg.Pass, host)
	}
	return m
}

func (m *Mailer) message(r Report) (*email.Email, error) {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = m.cfg.To
	e.Subject = "Reporte de comisiones " + r.Period
	var body strings.Builder
	fmt.Fprintf(&body, "Cordial saludo,\n\nSe adjunta el reporte de comisiones del periodo %s.\n", r.Period)
	if r.Summary != "" {
		body.WriteString("\n" + r.Summary + "\n")
	}
	body.WriteString("\nCrediAsesor Backoffice")
	e.Text = []byte(body.String())
	if len(r.Content) > 0 {
		if _, err := e.Attach(bytes.NewReader(r.Content), r.FileName, "text/plain; charset=utf-8"); err != nil {
			return nil, fmt.Errorf("attach %s: %w", r.FileName, err)
		}
	}
	return e, nil
}

// SendReport mails the report to every configured recipient.
func (m *Mailer) SendReport(ctx context.Context, r Report) error {
	if len(m.cfg.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := m.message(r)
	if err != nil {
		return err
	}
	if err := m.send(e, m.cfg.Addr, m.auth); err != nil {
		m.log.Error("commission report mail failed", zap.String("periodo", r.Period), zap.Error(err))
		return fmt.Errorf("send report %s: %w", r.Period, err)
	}
	m.log.Info("commission report mailed",
		zap.String("periodo", r.Period),
		zap.Strings("to", m.cfg.To),
		zap.String("file", r.FileName))
	return nil
}
