// Package rulepack loads and compiles the field recognition rules from the embedded rules.json.
// It prepares per-field regex rule sets and closed-list matchers for the extractor
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

//go:embed rules.json
var embedded []byte

// Field names a recognizable itinerary field
type Field string

// Field identifiers as they appear under "fields" in rules.json
const (
	FieldDate         Field = "date"
	FieldETD          Field = "etd"
	FieldETA          Field = "eta"
	FieldDeparture    Field = "departure"
	FieldArrival      Field = "arrival"
	FieldWeek         Field = "week"
	FieldPOD          Field = "pod"
	FieldOrigin       Field = "origin"
	FieldDestination  Field = "destination"
	FieldContainer    Field = "container"
	FieldBooking      Field = "booking"
	FieldVoyage       Field = "voyage"
	FieldVesselVoyage Field = "vessel_voyage"
	FieldVesselLabel  Field = "vessel_label"
	FieldPortMention  Field = "port_mention"
)

// requiredFields must each carry at least one rule
var requiredFields = []Field{
	FieldDate, FieldETD, FieldETA, FieldDeparture, FieldArrival, FieldWeek,
	FieldPOD, FieldOrigin, FieldDestination, FieldContainer, FieldBooking,
	FieldVoyage, FieldVesselVoyage, FieldVesselLabel, FieldPortMention,
}

type rawRule struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Group   int    `json:"group"`
	CI      bool   `json:"ci"`
}

type rawRuleSet struct {
	MinLen          int       `json:"min_len"`
	RequireDigit    bool      `json:"require_digit"`
	MaxWords        int       `json:"max_words"`
	Title           bool      `json:"title"`
	RejectLoadPorts bool      `json:"reject_load_ports"`
	Trim            string    `json:"trim"`
	Rules           []rawRule `json:"rules"`
}

type rawStops struct {
	DateLike   string   `json:"date_like"`
	VoyageLike string   `json:"voyage_like"`
	Labels     []string `json:"labels"`
}

type rawKeywords struct {
	Vessel    []string `json:"vessel"`
	Departure []string `json:"departure"`
	Arrival   []string `json:"arrival"`
}

type rawPack struct {
	Version        int                   `json:"version"`
	Meta           map[string]any        `json:"meta"`
	Limits         Limits                `json:"limits"`
	Keywords       rawKeywords           `json:"keywords"`
	Stops          rawStops              `json:"stops"`
	Carriers       []string              `json:"carriers"`
	LoadPorts      []Term                `json:"load_ports"`
	PortIndicators []string              `json:"port_indicators"`
	PortPrefixes   []string              `json:"port_prefixes"`
	DischargePorts []Term                `json:"discharge_ports"`
	CommonPorts    []Term                `json:"common_ports"`
	Months         map[string][]string   `json:"months"`
	Fields         map[Field]*rawRuleSet `json:"fields"`
}

// Limits carries the numeric knobs of vessel detection and windowing
type Limits struct {
	VesselMaxWords   int   `json:"vessel_max_words"`
	VesselMaxWordLen int   `json:"vessel_max_word_len"`
	VesselMinLen     int   `json:"vessel_min_len"`
	WindowBefore     int   `json:"window_before"`
	WindowAfter      int   `json:"window_after"`
	PortWindowBefore int   `json:"port_window_before"`
	PortWindowAfter  int   `json:"port_window_after"`
	ProximityOffsets []int `json:"proximity_offsets"`
}

// Rule is one compiled pattern; Group selects the capture that carries the value
type Rule struct {
	ID      string
	Pattern string
	Group   int

	re *regexp.Regexp
}

// Regexp returns the compiled pattern
func (r Rule) Regexp() *regexp.Regexp { return r.re }

// RuleSet is the ordered rule list for one field plus its acceptance knobs
type RuleSet struct {
	Field           Field
	Rules           []Rule
	MinLen          int
	RequireDigit    bool
	MaxWords        int
	Title           bool
	RejectLoadPorts bool
	Trim            string
}

// Each walks rules in order and, within a rule, matches in text order.
// fn receives the raw captured value and its byte offset; returning true stops the walk
func (rs *RuleSet) Each(text string, fn func(rule Rule, value string, start int) bool) {
	if rs == nil || text == "" {
		return
	}
	for _, r := range rs.Rules {
		for _, m := range r.re.FindAllStringSubmatchIndex(text, -1) {
			lo, hi := m[2*r.Group], m[2*r.Group+1]
			if lo < 0 {
				continue
			}
			if fn(r, text[lo:hi], lo) {
				return
			}
		}
	}
}

// Clean applies the set's mechanical shaping: whitespace and Trim characters are
// stripped and the value is cut to MaxWords words. It reports false when the value
// fails MinLen or RequireDigit
func (rs *RuleSet) Clean(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if rs.Trim != "" {
		v = strings.Trim(v, rs.Trim+" \t")
	}
	if rs.MaxWords > 0 {
		words := strings.Fields(v)
		if len(words) > rs.MaxWords {
			words = words[:rs.MaxWords]
		}
		v = strings.Join(words, " ")
	}
	if v == "" {
		return "", false
	}
	if rs.MinLen > 0 && len([]rune(v)) < rs.MinLen {
		return "", false
	}
	if rs.RequireDigit && !strings.ContainsAny(v, "0123456789") {
		return "", false
	}
	return v, true
}

// Pack represents the compiled rules and vocabularies
type Pack struct {
	Version int
	Meta    map[string]any
	Limits  Limits

	Fields map[Field]*RuleSet

	Carriers       *Matcher
	LoadPorts      *Matcher
	PortIndicators *Matcher
	DischargePorts *Matcher
	CommonPorts    *Matcher

	VesselKeywords    []string
	DepartureKeywords []string
	ArrivalKeywords   []string
	PortPrefixes      []string
	StopLabels        map[string]struct{}
	Months            map[string][]string

	DateLike   *regexp.Regexp
	VoyageLike *regexp.Regexp
}

// Rules returns the rule set for f; an unknown field yields an empty set, never nil
func (p *Pack) Rules(f Field) *RuleSet {
	if rs, ok := p.Fields[f]; ok {
		return rs
	}
	return &RuleSet{Field: f}
}

// MonthNames returns the month names for a locale, January first
func (p *Pack) MonthNames(locale string) []string {
	return p.Months[strings.ToLower(locale)]
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	return Parse(embedded)
}

// Parse compiles a pack from raw rules.json bytes
func Parse(data []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("rulepack: unsupported rules.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:           rp.Version,
		Meta:              rp.Meta,
		Limits:            rp.Limits,
		Fields:            make(map[Field]*RuleSet, len(rp.Fields)),
		VesselKeywords:    lowerAll(rp.Keywords.Vessel),
		DepartureKeywords: lowerAll(rp.Keywords.Departure),
		ArrivalKeywords:   lowerAll(rp.Keywords.Arrival),
		PortPrefixes:      make([]string, 0, len(rp.PortPrefixes)),
		StopLabels:        make(map[string]struct{}, len(rp.Stops.Labels)),
		Months:            make(map[string][]string, len(rp.Months)),
	}
	p.Limits.applyDefaults()

	// prefixes keep their trailing space
	for _, s := range rp.PortPrefixes {
		if s = strings.ToLower(strings.TrimLeft(s, " \t")); s != "" {
			p.PortPrefixes = append(p.PortPrefixes, s)
		}
	}
	for _, s := range lowerAll(rp.Stops.Labels) {
		p.StopLabels[s] = struct{}{}
	}
	for loc, names := range rp.Months {
		if len(names) != 12 {
			return nil, fmt.Errorf("rulepack: months %q: want 12 names, got %d", loc, len(names))
		}
		p.Months[strings.ToLower(loc)] = lowerAll(names)
	}

	var err error
	if p.DateLike, err = compileStop("date_like", rp.Stops.DateLike); err != nil {
		return nil, err
	}
	if p.VoyageLike, err = compileStop("voyage_like", rp.Stops.VoyageLike); err != nil {
		return nil, err
	}

	for f, raw := range rp.Fields {
		if raw == nil {
			continue
		}
		rs, err := compileRuleSet(f, raw)
		if err != nil {
			return nil, err
		}
		p.Fields[f] = rs
	}
	for _, f := range requiredFields {
		if len(p.Rules(f).Rules) == 0 {
			return nil, fmt.Errorf("rulepack: field %q has no rules", f)
		}
	}

	carriers := make([]Term, 0, len(rp.Carriers))
	for _, c := range rp.Carriers {
		c = strings.ToLower(strings.TrimSpace(c))
		carriers = append(carriers, Term{Match: c, Name: strings.ToUpper(c)})
	}
	indicators := make([]Term, 0, len(rp.PortIndicators))
	for _, s := range lowerAll(rp.PortIndicators) {
		indicators = append(indicators, Term{Match: s, Name: s})
	}

	p.Carriers = NewMatcher(carriers)
	p.LoadPorts = NewMatcher(rp.LoadPorts)
	p.PortIndicators = NewMatcher(indicators)
	p.DischargePorts = NewMatcher(rp.DischargePorts)
	p.CommonPorts = NewMatcher(rp.CommonPorts)

	return p, nil
}

func compileRuleSet(f Field, raw *rawRuleSet) (*RuleSet, error) {
	rs := &RuleSet{
		Field:           f,
		MinLen:          raw.MinLen,
		RequireDigit:    raw.RequireDigit,
		MaxWords:        raw.MaxWords,
		Title:           raw.Title,
		RejectLoadPorts: raw.RejectLoadPorts,
		Trim:            raw.Trim,
		Rules:           make([]Rule, 0, len(raw.Rules)),
	}
	for _, r := range raw.Rules {
		src := r.Pattern
		if r.CI {
			src = "(?i)" + src
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile %s/%s %q: %w", f, r.ID, r.Pattern, err)
		}
		if r.Group < 0 || r.Group > re.NumSubexp() {
			return nil, fmt.Errorf("rulepack: %s/%s: group %d out of range (pattern has %d)", f, r.ID, r.Group, re.NumSubexp())
		}
		rs.Rules = append(rs.Rules, Rule{ID: r.ID, Pattern: r.Pattern, Group: r.Group, re: re})
	}
	return rs, nil
}

func compileStop(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("rulepack: stops.%s is empty", name)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("rulepack: compile stops.%s %q: %w", name, pattern, err)
	}
	return re, nil
}

func (l *Limits) applyDefaults() {
	if l.VesselMaxWords <= 0 {
		l.VesselMaxWords = 5
	}
	if l.VesselMaxWordLen <= 0 {
		l.VesselMaxWordLen = 20
	}
	if l.VesselMinLen <= 0 {
		l.VesselMinLen = 3
	}
	if l.WindowBefore <= 0 {
		l.WindowBefore = 10
	}
	if l.WindowAfter <= 0 {
		l.WindowAfter = 20
	}
	if l.PortWindowBefore <= 0 {
		l.PortWindowBefore = 5
	}
	if l.PortWindowAfter <= 0 {
		l.PortWindowAfter = 10
	}
	if len(l.ProximityOffsets) == 0 {
		l.ProximityOffsets = []int{-2, -1, 1, 2}
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
