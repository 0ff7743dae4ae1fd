// Package ingest parses keyword exports into records. Malformed numbers are
// reported per row and never coerced to zero.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"seodash/internal/models"
)

// Column headers of an organic keyword export.
const (
	ColKeyword          = "keyword"
	ColCountryCode      = "country code"
	ColLocation         = "location"
	ColEntities         = "entities"
	ColSERPFeatures     = "serp features"
	ColVolume           = "volume"
	ColKD               = "kd"
	ColCPC              = "cpc"
	ColOrganicTraffic   = "organic traffic"
	ColPaidTraffic      = "paid traffic"
	ColCurrentPosition  = "current position"
	ColCurrentURL       = "current url"
	ColCurrentURLInside = "current url inside"
	ColUpdated          = "updated"
	ColNavigational     = "navigational"
	ColInformational    = "informational"
	ColCommercial       = "commercial"
	ColTransactional    = "transactional"
	ColBranded          = "branded"
	ColLocal            = "local"
)

// Headers is the canonical column order, as written by exports.
var Headers = []string{
	"Keyword", "Country code", "Location", "Entities", "SERP features",
	"Volume", "KD", "CPC", "Organic traffic", "Paid traffic",
	"Current position", "Current URL", "Current URL inside", "Updated",
	"Navigational", "Informational", "Commercial", "Transactional", "Branded", "Local",
}

// RequiredColumns must be present in every export.
var RequiredColumns = []string{ColKeyword, ColCurrentPosition}

// Config bounds a parse.
type Config struct {
	MaxRows   int // 0 = unlimited
	MaxErrors int // stop collecting after this many row errors, 0 = unlimited
}

// DefaultConfig returns the limits used by the server and importer.
func DefaultConfig() Config {
	return Config{
		MaxRows:   100000,
		MaxErrors: 50,
	}
}

// Result holds a parsed export.
type Result struct {
	Site      string
	TotalRows int
	Records   []models.KeywordRecord
	Errors    []*RowError
}

// Imported is the number of rows that parsed cleanly.
func (r *Result) Imported() int {
	return len(r.Records)
}

// Err joins the row errors, or returns nil if every row parsed.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Parse reads a CSV export for site. A missing required column or an
// unreadable file returns an error; bad cells are collected in Result.Errors.
func Parse(r io.Reader, site string, cfg Config) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	if delim := sniffDelimiter(data); delim != ',' {
		reader.Comma = delim
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	res := &Result{Site: site}
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if cfg.MaxRows > 0 && res.TotalRows >= cfg.MaxRows {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, cfg.MaxRows)
		}
		res.TotalRows++
		if err != nil {
			res.addError(cfg, &RowError{Row: row, Err: err})
			continue
		}

		p := rowParser{fields: fields, cols: cols, row: row}
		rec := p.record(site)
		if len(p.errs) > 0 {
			for _, e := range p.errs {
				res.addError(cfg, e)
			}
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func (r *Result) addError(cfg Config, e *RowError) {
	if cfg.MaxErrors > 0 && len(r.Errors) >= cfg.MaxErrors {
		return
	}
	r.Errors = append(r.Errors, e)
}

func sniffDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(line, []byte("\t")) > bytes.Count(line, []byte(",")) {
		return '\t'
	}
	return ','
}

type rowParser struct {
	fields []string
	cols   map[string]int
	row    int
	errs   []*RowError
}

func (p *rowParser) get(col string) string {
	i, ok := p.cols[col]
	if !ok || i >= len(p.fields) {
		return ""
	}
	return strings.TrimSpace(p.fields[i])
}

func (p *rowParser) fail(col, value string, err error) {
	p.errs = append(p.errs, &RowError{Row: p.row, Column: col, Value: value, Err: err})
}

func (p *rowParser) number(col string) (float64, bool) {
	v := p.get(col)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(col, v, ErrNotNumeric)
		return 0, false
	}
	return f, true
}

// maxExactCount is the largest whole number a float64 holds exactly.
const maxExactCount = 1 << 53

// count parses a non-negative whole number. Exports sometimes write "800.0".
func (p *rowParser) count(col string) int64 {
	f, ok := p.number(col)
	if !ok {
		return 0
	}
	if f != math.Trunc(f) {
		p.fail(col, p.get(col), ErrNotInteger)
		return 0
	}
	if f < 0 || f > maxExactCount {
		p.fail(col, p.get(col), ErrOutOfRange)
		return 0
	}
	return int64(f)
}

func (p *rowParser) position() int {
	f, ok := p.number(ColCurrentPosition)
	if !ok {
		return models.NotRankingPosition
	}
	if f != math.Trunc(f) {
		p.fail(ColCurrentPosition, p.get(ColCurrentPosition), ErrNotInteger)
		return models.NotRankingPosition
	}
	if f < 1 {
		p.fail(ColCurrentPosition, p.get(ColCurrentPosition), ErrOutOfRange)
		return models.NotRankingPosition
	}
	return int(min(f, models.NotRankingPosition))
}

func (p *rowParser) boolean(col string) bool {
	switch v := strings.ToLower(p.get(col)); v {
	case "", "false", "0", "no":
		return false
	case "true", "1", "yes":
		return true
	default:
		p.fail(col, p.get(col), ErrNotBoolean)
		return false
	}
}

func (p *rowParser) record(site string) models.KeywordRecord {
	rec := models.KeywordRecord{
		Site:            site,
		Keyword:         p.get(ColKeyword),
		CountryCode:     p.get(ColCountryCode),
		Location:        p.get(ColLocation),
		Entities:        p.get(ColEntities),
		SERPFeatures:    p.get(ColSERPFeatures),
		Volume:          p.count(ColVolume),
		OrganicTraffic:  p.count(ColOrganicTraffic),
		PaidTraffic:     p.count(ColPaidTraffic),
		CurrentPosition: p.position(),
		CurrentURL:      p.get(ColCurrentURL),
		Navigational:    p.boolean(ColNavigational),
		Informational:   p.boolean(ColInformational),
		Commercial:      p.boolean(ColCommercial),
		Transactional:   p.boolean(ColTransactional),
		Branded:         p.boolean(ColBranded),
		Local:           p.boolean(ColLocal),
	}
	if rec.Keyword == "" {
		p.fail(ColKeyword, "", ErrEmptyKeyword)
	}
	if kd, ok := p.number(ColKD); ok {
		if kd < 0 || kd > 100 {
			p.fail(ColKD, p.get(ColKD), ErrOutOfRange)
		}
		rec.KeywordDifficulty = kd
	}
	if cpc, ok := p.number(ColCPC); ok {
		if cpc < 0 {
			p.fail(ColCPC, p.get(ColCPC), ErrOutOfRange)
		}
		rec.CPC = cpc
	}
	if v := p.get(ColUpdated); v != "" {
		t, err := parseUpdated(v)
		if err != nil {
			p.fail(ColUpdated, v, ErrNotDate)
		}
		rec.UpdatedAt = t
	}
	return rec
}

var updatedLayouts = []string{time.RFC3339, time.DateTime, time.DateOnly}

func parseUpdated(v string) (time.Time, error) {
	var err error
	for _, layout := range updatedLayouts {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
