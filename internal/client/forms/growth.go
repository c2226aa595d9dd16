package forms

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	FieldHeight     = "height"
	FieldWeight     = "weight"
	FieldHeadSize   = "head_size"
	FieldMeasuredAt = "measured_at"
)

// GrowthDraft is the growth form as typed by the user.
type GrowthDraft struct {
	Height     string
	Weight     string
	HeadSize   string
	MeasuredAt string
	Notes      string
}

// Measurement is a validated GrowthDraft.
type Measurement struct {
	Height     float64
	Weight     float64
	HeadSize   float64
	MeasuredAt time.Time
	Notes      string
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

// Parse checks that every numeric field is present and parses as a number.
// Values are not range-checked. An empty MeasuredAt means now.
func (d GrowthDraft) Parse(now time.Time) (Measurement, error) {
	fe := FieldErrors{}
	m := Measurement{Notes: strings.TrimSpace(d.Notes), MeasuredAt: now}

	m.Height = parseNumber(fe, FieldHeight, d.Height)
	m.Weight = parseNumber(fe, FieldWeight, d.Weight)
	m.HeadSize = parseNumber(fe, FieldHeadSize, d.HeadSize)

	if s := strings.TrimSpace(d.MeasuredAt); s != "" {
		t, ok := parseDate(s, now.Location())
		if !ok {
			fe[FieldMeasuredAt] = "expected a date like 2006-01-02"
		}
		m.MeasuredAt = t
	}

	if err := fe.orNil(); err != nil {
		return Measurement{}, err
	}
	return m, nil
}

func (d GrowthDraft) Validate() error {
	_, err := d.Parse(time.Now())
	return err
}

func parseNumber(fe FieldErrors, field, raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		fe[field] = "required"
		return 0
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		fe[field] = "must be a number"
		return 0
	}
	return v
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
