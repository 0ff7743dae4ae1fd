package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
tracked_site: tokyoweekender.com
sites:
  - name: tokyoweekender.com
    display_name: Tokyo Weekender
    files: "tokyoweekender*.csv"
  - name: timeout.com
    files: "timeout-*.csv"
scoring:
  traffic_gap: 0.6
  volume: 0.3
  difficulty: 0.1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAMLConfigFile(t *testing.T) {
	cfg, err := LoadYAMLConfigFile(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}

	if cfg.TrackedSite != "tokyoweekender.com" {
		t.Errorf("TrackedSite = %q", cfg.TrackedSite)
	}
	if len(cfg.Sites) != 2 {
		t.Fatalf("len(Sites) = %d, want 2", len(cfg.Sites))
	}
	if got := cfg.GetSite("timeout.com"); got == nil || got.DisplayName != "timeout.com" {
		t.Errorf("GetSite(timeout.com) = %+v, want display name defaulted", got)
	}
	if cfg.Scoring.TrafficGap != 0.6 || cfg.Scoring.IsZero() {
		t.Errorf("Scoring = %+v", cfg.Scoring)
	}
}

func TestLoadYAMLConfigFile_Missing(t *testing.T) {
	cfg, err := LoadYAMLConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || cfg != nil {
		t.Errorf("LoadYAMLConfigFile(absent) = %v, %v, want nil, nil", cfg, err)
	}
}

func TestLoadYAMLConfigFile_Invalid(t *testing.T) {
	if _, err := LoadYAMLConfigFile(writeConfig(t, "sites: [")); err == nil {
		t.Error("LoadYAMLConfigFile(invalid) error = nil, want error")
	}
}

func TestYAMLConfig_SiteForFile(t *testing.T) {
	cfg, err := LoadYAMLConfigFile(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"/data/tokyoweekender-organic.csv", "tokyoweekender.com"},
		{"data/Timeout-keywords.CSV", "timeout.com"},
		{"other.csv", ""},
	}
	for _, tt := range tests {
		got := cfg.SiteForFile(tt.path)
		name := ""
		if got != nil {
			name = got.Name
		}
		if name != tt.want {
			t.Errorf("SiteForFile(%q) = %q, want %q", tt.path, name, tt.want)
		}
	}

	var nilCfg *YAMLConfig
	if nilCfg.SiteForFile("x.csv") != nil || nilCfg.GetSite("x") != nil {
		t.Error("nil config returned a site")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("CACHE_TTL", "bogus")
	t.Setenv("OIDC_ISSUER", "")
	t.Setenv("DIGEST_RECIPIENTS", " a@example.com, ,b@example.com")

	cfg := Load()
	if !cfg.IsDev() {
		t.Error("IsDev() = false, want true by default")
	}
	if cfg.CacheTTL.Minutes() != 15 {
		t.Errorf("CacheTTL = %v, want 15m fallback", cfg.CacheTTL)
	}
	if len(cfg.DigestRecipients) != 2 || cfg.DigestRecipients[1] != "b@example.com" {
		t.Errorf("DigestRecipients = %v", cfg.DigestRecipients)
	}
	if cfg.IsOIDCEnabled() {
		t.Error("IsOIDCEnabled() = true with no issuer")
	}
}

func TestConfig_IsEmailEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"all set", Config{SMTPEnabled: true, SMTPHost: "smtp", SMTPFrom: "a@b"}, true},
		{"switched off", Config{SMTPHost: "smtp", SMTPFrom: "a@b"}, false},
		{"no host", Config{SMTPEnabled: true, SMTPFrom: "a@b"}, false},
		{"no sender", Config{SMTPEnabled: true, SMTPHost: "smtp"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEmailEnabled(); got != tt.want {
				t.Errorf("IsEmailEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_IsAdminEmail(t *testing.T) {
	cfg := Config{AdminEmails: []string{"Ops@Example.com"}}
	if !cfg.IsAdminEmail("ops@example.com") {
		t.Error("IsAdminEmail() = false, want case-insensitive match")
	}
	if cfg.IsAdminEmail("someone@example.com") {
		t.Error("IsAdminEmail() = true for unlisted address")
	}
	if cfg.IsAdminEmail("") {
		t.Error("IsAdminEmail(\"\") = true")
	}
}
