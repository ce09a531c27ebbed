package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/jordan-wright/email"
)

type captured struct {
	e    *email.Email
	addr string
	auth smtp.Auth
}

func capture(m *Mailer, err error) *[]captured {
	var got []captured
	m.send = func(e *email.Email, addr string, a smtp.Auth) error {
		got = append(got, captured{e, addr, a})
		return err
	}
	return &got
}

func TestSendReport_AttachesFile(t *testing.T) {
	m := New(Config{Addr: "smtp.local:587", User: "bot", Pass: "x", From: "comisiones@crediasesor.co", To: []string{"gerencia@crediasesor.co"}}, nil)
	got := capture(m, nil)

	err := m.SendReport(context.Background(), Report{
		Period:   "2025-07",
		Summary:  "Total: $150.000 COP",
		FileName: "comisiones_2025-07.txt",
		Content:  []byte("REPORTE"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(*got) != 1 {
		t.Fatalf("sent %d mails", len(*got))
	}
	c := (*got)[0]
	if c.addr != "smtp.local:587" || c.auth == nil {
		t.Fatalf("addr=%q auth=%v", c.addr, c.auth)
	}
	if c.e.Subject != "Reporte de comisiones 2025-07" || c.e.From != "comisiones@crediasesor.co" {
		t.Fatalf("headers: %q %q", c.e.Subject, c.e.From)
	}
	if !strings.Contains(string(c.e.Text), "Total: $150.000 COP") {
		t.Fatalf("body = %s", c.e.Text)
	}
	if len(c.e.Attachments) != 1 || c.e.Attachments[0].Filename != "comisiones_2025-07.txt" || string(c.e.Attachments[0].Content) != "REPORTE" {
		t.Fatalf("attachments = %+v", c.e.Attachments)
	}
}

func TestSendReport_NoRecipientsIsNoop(t *testing.T) {
	m := New(Config{Addr: "smtp.local:25"}, nil)
	got := capture(m, nil)
	if err := m.SendReport(context.Background(), Report{Period: "2025-07"}); err != nil {
		t.Fatal(err)
	}
	if len(*got) != 0 {
		t.Fatal("nothing should be sent without recipients")
	}
	if m.auth != nil {
		t.Fatal("no auth without SMTP user")
	}
}

func TestSendReport_WrapsSendError(t *testing.T) {
	boom := errors.New("connection refused")
	m := New(Config{Addr: "smtp.local:25", To: []string{"a@b.co"}}, nil)
	capture(m, boom)
	err := m.SendReport(context.Background(), Report{Period: "2025-07"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestSendReport_CanceledContext(t *testing.T) {
	m := New(Config{Addr: "smtp.local:25", To: []string{"a@b.co"}}, nil)
	got := capture(m, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.SendReport(ctx, Report{Period: "2025-07"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if len(*got) != 0 {
		t.Fatal("canceled send must not dial")
	}
}
