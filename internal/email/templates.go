package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"seodash/internal/config"
	"seodash/internal/keywords"
	"seodash/internal/models"
	"seodash/internal/reports"
)

const productName = "SEO Dashboard"

// DigestData is everything the digest email shows.
type DigestData struct {
	Summary     reports.SummaryReport
	Buckets     []keywords.Bucket
	TopKeywords []models.KeywordRecord
	GeneratedAt time.Time
}

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        table { width: 100%%; border-collapse: collapse; background: white; }
        th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e5e7eb; }
        .label { font-weight: 600; color: #374151; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content, productName, t.cfg.BaseURL, t.cfg.BaseURL)
}

// Digest generates the keyword digest of one site.
func (t *Templates) Digest(d DigestData) (subject, htmlBody, textBody string) {
	site := d.Summary.Site
	subject = fmt.Sprintf("[%s] Keyword digest for %s", productName, site)

	avg := "n/a"
	if d.Summary.AvgPosition != nil {
		avg = fmt.Sprintf("%.1f", *d.Summary.AvgPosition)
	}

	var buckets, top strings.Builder
	for _, b := range d.Buckets {
		fmt.Fprintf(&buckets, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%.1f%%</td></tr>",
			html.EscapeString(b.Name), b.Count, b.TotalTraffic, b.Percentage)
	}
	for _, k := range d.TopKeywords {
		fmt.Fprintf(&top, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>",
			html.EscapeString(k.Keyword), k.CurrentPosition, k.Volume, k.OrganicTraffic)
	}
	if top.Len() == 0 {
		top.WriteString(`<tr><td colspan="4">No page-one keywords.</td></tr>`)
	}

	content := fmt.Sprintf(`
        <p>Keyword summary for <strong>%s</strong> as of %s.</p>
        <p><span class="label">Keywords:</span> %d &middot; <span class="label">Volume:</span> %d &middot; <span class="label">Traffic:</span> %d</p>
        <p><span class="label">Average position:</span> %s &middot; <span class="label">Top 3:</span> %d</p>

        <h3>Position distribution</h3>
        <table><tr><th>Bucket</th><th>Keywords</th><th>Traffic</th><th>Share</th></tr>%s</table>

        <h3>Top keywords</h3>
        <table><tr><th>Keyword</th><th>Position</th><th>Volume</th><th>Traffic</th></tr>%s</table>

        <p style="text-align: center;">
            <a href="%s" class="button">Open Dashboard</a>
        </p>
    `,
		html.EscapeString(site), d.GeneratedAt.Format("2006-01-02"),
		d.Summary.TotalKeywords, d.Summary.TotalVolume, d.Summary.TotalTraffic,
		avg, d.Summary.TopPerformingKeywords,
		buckets.String(), top.String(), t.cfg.BaseURL,
	)
	htmlBody = t.baseHTML(subject, content)

	var text strings.Builder
	fmt.Fprintf(&text, "Keyword digest for %s (%s)\n\n", site, d.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&text, "Keywords: %d\nVolume: %d\nTraffic: %d\nAverage position: %s\nTop 3: %d\n\n",
		d.Summary.TotalKeywords, d.Summary.TotalVolume, d.Summary.TotalTraffic, avg, d.Summary.TopPerformingKeywords)
	text.WriteString("Position distribution\n")
	for _, b := range d.Buckets {
		fmt.Fprintf(&text, "  %-10s %6d keywords %8d traffic\n", b.Name, b.Count, b.TotalTraffic)
	}
	text.WriteString("\nTop keywords\n")
	for i, k := range d.TopKeywords {
		fmt.Fprintf(&text, "  %d. %s (position %d, %d traffic)\n", i+1, k.Keyword, k.CurrentPosition, k.OrganicTraffic)
	}
	fmt.Fprintf(&text, "\nDashboard: %s\n\n--\n%s\n", t.cfg.BaseURL, productName)
	textBody = text.String()

	return
}
