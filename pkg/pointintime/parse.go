package pointintime

import (
	"strings"
	"time"
)

// Tag tells which point in time a reference addresses.
type Tag string

const (
	TagHead      Tag = "head"
	TagLSN       Tag = "lsn"
	TagTimestamp Tag = "timestamp"
)

// QualifierSeparator separates a branch from its point in time qualifier.
const QualifierSeparator = "@"

// PITBranch is a parsed branch reference: a branch name or id, and the point
// in time on that branch. LSN is set only for TagLSN and Timestamp only for
// TagTimestamp.
type PITBranch struct {
	Branch    string `json:"branch" yaml:"branch"`
	Tag       Tag    `json:"tag" yaml:"tag"`
	LSN       string `json:"lsn,omitempty" yaml:"lsn,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func (b PITBranch) String() string {
	switch b.Tag {
	case TagLSN:
		return b.Branch + QualifierSeparator + b.LSN
	case TagTimestamp:
		return b.Branch + QualifierSeparator + b.Timestamp
	default:
		return b.Branch
	}
}

// timestampLayouts are tried in order after the input was normalized to an
// upper case 'T' date/time separator and upper case 'Z'.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02Z07:00",
	"2006-01-02Z0700",
	"2006-01-02",
}

const dateLen = len("2006-01-02")

// parseTimestamp parses an ISO-8601 timestamp. Values without a zone are UTC.
func parseTimestamp(s string) (time.Time, error) {
	norm := strings.ToUpper(s)
	if len(norm) > dateLen && norm[dateLen] == ' ' {
		norm = norm[:dateLen] + "T" + norm[dateLen+1:]
	}
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.Parse(layout, norm)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Parser splits branch references into a branch and a point in time.
type Parser struct {
	// Now returns the instant timestamps must not be after. time.Now when nil.
	Now func() time.Time
}

func NewParser(now func() time.Time) *Parser {
	return &Parser{Now: now}
}

func (p *Parser) now() time.Time {
	if p == nil || p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// ParsePITBranch parses raw of the form "branch", "branch@<lsn>" or
// "branch@<timestamp>". raw is split on its first '@', so a branch name can
// not contain one. Timestamps are kept exactly as typed.
func (p *Parser) ParsePITBranch(raw string) (PITBranch, error) {
	branch, qualifier, found := strings.Cut(raw, QualifierSeparator)
	if branch == "" {
		return PITBranch{}, newParseError(KindEmptyBranch, raw)
	}
	if !found {
		return PITBranch{Branch: branch, Tag: TagHead}, nil
	}

	if LooksLikeLSN(qualifier) {
		return PITBranch{Branch: branch, Tag: TagLSN, LSN: qualifier}, nil
	}
	if !LooksLikeTimestamp(qualifier) {
		return PITBranch{}, newParseError(KindInvalidTimestampFormat, qualifier)
	}
	ts, err := parseTimestamp(qualifier)
	if err != nil {
		return PITBranch{}, newParseError(KindInvalidTimestampFormat, qualifier)
	}
	if ts.After(p.now()) {
		return PITBranch{}, newParseError(KindFutureTimestamp, qualifier)
	}
	return PITBranch{Branch: branch, Tag: TagTimestamp, Timestamp: qualifier}, nil
}

var defaultParser = &Parser{}

// ParsePITBranch parses raw against the wall clock. See Parser.ParsePITBranch.
func ParsePITBranch(raw string) (PITBranch, error) {
	return defaultParser.ParsePITBranch(raw)
}
