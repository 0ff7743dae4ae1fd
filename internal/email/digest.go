package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seodash/internal/config"
	"seodash/internal/reports"
)

const digestTopKeywords = 5

// AdminEmailGetter lists the fallback digest recipients.
type AdminEmailGetter interface {
	GetAdminEmails(ctx context.Context) ([]string, error)
}

// Digester sends the keyword digest of the tracked site.
type Digester struct {
	service   *Service
	templates *Templates
	reports   *reports.Service
	admins    AdminEmailGetter
	cfg       *config.Config
	now       func() time.Time
}

// NewDigester creates a digest sender. admins may be nil.
func NewDigester(cfg *config.Config, svc *reports.Service, admins AdminEmailGetter) *Digester {
	return &Digester{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		reports:   svc,
		admins:    admins,
		cfg:       cfg,
		now:       time.Now,
	}
}

// recipients returns DIGEST_RECIPIENTS, or every admin when none are configured.
func (d *Digester) recipients(ctx context.Context) ([]string, error) {
	if len(d.cfg.DigestRecipients) > 0 {
		return d.cfg.DigestRecipients, nil
	}
	if d.admins == nil {
		return nil, nil
	}
	return d.admins.GetAdminEmails(ctx)
}

// Build assembles the digest of site.
func (d *Digester) Build(ctx context.Context, site string) (DigestData, error) {
	summary, err := d.reports.Summary(ctx, site)
	if err != nil {
		return DigestData{}, fmt.Errorf("digest summary: %w", err)
	}
	perf, err := d.reports.Performance(ctx, site)
	if err != nil {
		return DigestData{}, fmt.Errorf("digest performance: %w", err)
	}

	top := perf.HighPerformers
	if len(top) > digestTopKeywords {
		top = top[:digestTopKeywords]
	}
	return DigestData{
		Summary:     summary,
		Buckets:     perf.Distribution.Buckets(),
		TopKeywords: top,
		GeneratedAt: d.now(),
	}, nil
}

// SendDigest emails the tracked site's digest.
func (d *Digester) SendDigest(ctx context.Context) error {
	if !d.service.IsEnabled() {
		return nil
	}

	to, err := d.recipients(ctx)
	if err != nil {
		return fmt.Errorf("digest recipients: %w", err)
	}
	if len(to) == 0 {
		slog.Warn("digest skipped: no recipients")
		return nil
	}

	data, err := d.Build(ctx, d.cfg.TrackedSite)
	if err != nil {
		return err
	}
	subject, htmlBody, textBody := d.templates.Digest(data)
	return d.service.SendEmail(to, subject, htmlBody, textBody)
}
