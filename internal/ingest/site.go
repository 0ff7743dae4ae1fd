package ingest

import (
	"path/filepath"
	"strings"

	"seodash/internal/config"
)

// ResolveSite picks the site an export file belongs to: the catalogue entry
// whose file glob matches, otherwise the host embedded in the file name.
func ResolveSite(path string, catalogue *config.YAMLConfig) string {
	if s := catalogue.SiteForFile(path); s != nil {
		return s.Name
	}
	return SiteFromFilename(path)
}

// SiteFromFilename derives a site name from an export file name such as
// "www.timeout.jp-organic-keywords_2025-06-01.csv". It returns "" when the
// name carries no host.
func SiteFromFilename(path string) string {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base, _, _ = strings.Cut(base, "_")
	base, _, _ = strings.Cut(base, "-organic")
	if !strings.Contains(base, ".") {
		return ""
	}
	return base
}
