package email

import (
	"net/smtp"
	"strings"
	"testing"

	"seodash/internal/config"
)

func enabledConfig() *config.Config {
	return &config.Config{
		SMTPEnabled:  true,
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPFrom:     "noreply@example.com",
		SMTPFromName: "SEO Dashboard",
		BaseURL:      "https://seo.example.com",
	}
}

type captured struct {
	addr string
	auth smtp.Auth
	to   []string
	msg  string
}

func capture(s *Service) *captured {
	c := &captured{}
	s.send = func(addr string, auth smtp.Auth, to []string, msg []byte) error {
		c.addr, c.auth, c.to, c.msg = addr, auth, to, string(msg)
		return nil
	}
	return c
}

func TestNewService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantEnabled bool
	}{
		{
			name:        "enabled when all SMTP settings configured",
			cfg:         enabledConfig(),
			wantEnabled: true,
		},
		{
			name: "disabled when SMTPEnabled is false",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPPort: 587,
				SMTPFrom: "noreply@example.com",
			},
			wantEnabled: false,
		},
		{
			name: "disabled when SMTPHost is empty",
			cfg: &config.Config{
				SMTPEnabled: true,
				SMTPPort:    587,
				SMTPFrom:    "noreply@example.com",
			},
			wantEnabled: false,
		},
		{
			name:        "disabled with empty config",
			cfg:         &config.Config{},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.cfg)
			if svc.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", svc.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestService_SendEmail_Skips(t *testing.T) {
	disabled := NewService(&config.Config{})
	c := capture(disabled)
	if err := disabled.SendEmail([]string{"a@example.com"}, "S", "<p>h</p>", "t"); err != nil {
		t.Errorf("SendEmail() disabled = %v, want nil", err)
	}

	svc := NewService(enabledConfig())
	c2 := capture(svc)
	if err := svc.SendEmail(nil, "S", "<p>h</p>", "t"); err != nil {
		t.Errorf("SendEmail() no recipients = %v, want nil", err)
	}

	if c.msg != "" || c2.msg != "" {
		t.Error("nothing should have been sent")
	}
}

func TestService_SendEmail(t *testing.T) {
	cfg := enabledConfig()
	cfg.SMTPUsername = "user"
	cfg.SMTPPassword = "pass"
	svc := NewService(cfg)
	c := capture(svc)

	err := svc.SendEmail([]string{"a@example.com", "b@example.com"}, "Digest", "<p>HTML</p>", "Plain")
	if err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}

	if c.addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", c.addr)
	}
	if c.auth == nil {
		t.Error("expected PLAIN auth when credentials are set")
	}
	if len(c.to) != 2 {
		t.Errorf("to = %v", c.to)
	}
	for _, want := range []string{
		"From: SEO Dashboard <noreply@example.com>\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: Digest\r\n",
	} {
		if !strings.Contains(c.msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestService_FromHeader(t *testing.T) {
	tests := []struct {
		name     string
		fromName string
		want     string
	}{
		{"with name", "Reports", "From: Reports <noreply@example.com>\r\n"},
		{"without name", "", "From: noreply@example.com\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := enabledConfig()
			cfg.SMTPFromName = tt.fromName
			svc := NewService(cfg)
			c := capture(svc)

			if err := svc.SendEmail([]string{"a@example.com"}, "S", "", "t"); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(c.msg, tt.want) {
				t.Errorf("message starts %q, want %q", c.msg[:min(len(c.msg), 60)], tt.want)
			}
		})
	}
}

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name     string
		htmlBody string
		textBody string
		checks   []string
		absent   []string
	}{
		{
			name:     "multipart message format",
			htmlBody: "<p>HTML</p>",
			textBody: "Plain text",
			checks: []string{
				"MIME-Version: 1.0",
				"Content-Type: multipart/alternative; boundary=\"seodash-",
				"Content-Type: text/plain; charset=UTF-8",
				"Content-Type: text/html; charset=UTF-8",
			},
		},
		{
			name:     "html only format",
			htmlBody: "<p>HTML</p>",
			checks:   []string{"Content-Type: text/html; charset=UTF-8", "<p>HTML</p>"},
			absent:   []string{"multipart"},
		},
		{
			name:     "text only format",
			textBody: "Plain text",
			checks:   []string{"Content-Type: text/plain; charset=UTF-8", "Plain text"},
			absent:   []string{"multipart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := buildMessage("Test <test@example.com>", []string{"to@example.com"}, "Subject", tt.htmlBody, tt.textBody)
			for _, check := range tt.checks {
				if !strings.Contains(msg, check) {
					t.Errorf("message missing %q\nMessage:\n%s", check, msg)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(msg, a) {
					t.Errorf("message should not contain %q", a)
				}
			}
		})
	}
}

func TestBuildMessage_PlainBeforeHTML(t *testing.T) {
	msg := buildMessage("f@example.com", []string{"t@example.com"}, "S", "<p>h</p>", "plain")
	if strings.Index(msg, "text/plain") > strings.Index(msg, "text/html") {
		t.Error("plain text part should come first")
	}
	if !strings.HasSuffix(msg, "--\r\n") {
		t.Error("multipart message should end with the closing boundary")
	}
}
