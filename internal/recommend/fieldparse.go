// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cinematch/cinematch/internal/logging"
)

// Record is one parsed entry of a semi-structured cell, e.g. a TMDB genre
// mapping {"id": "28", "name": "Action"} or a crew credit with a "job" key.
// Values are stringified scalars.
type Record map[string]string

// FieldKind tags the decoded shape of a semi-structured cell.
type FieldKind int

const (
	// FieldMissing is an empty or undecodable cell.
	FieldMissing FieldKind = iota
	// FieldPlain is a bare scalar string without structure.
	FieldPlain
	// FieldRecords is a list of records, decoded from a list literal or a
	// pipe-delimited string.
	FieldRecords
)

// FieldValue is the tagged union a cell decodes to. Decoding happens once;
// consumers switch on Kind instead of re-inspecting the raw text.
type FieldValue struct {
	Kind    FieldKind
	Plain   string
	Records []Record
}

// DecodeField classifies and decodes one cell value. TMDB exports serialize
// list-of-mapping columns as Python repr literals (single quotes); simpler
// exports use pipe-delimited plain strings ("Action|Adventure"). Decoding
// never fails: a malformed literal without a pipe delimiter degrades to
// FieldMissing.
func DecodeField(text string) FieldValue {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FieldValue{Kind: FieldMissing}
	}

	if strings.HasPrefix(trimmed, "[") {
		if records, ok := decodeRecordList(trimmed); ok {
			return FieldValue{Kind: FieldRecords, Records: records}
		}
		logging.Debug().Str("cell", truncateForLog(trimmed)).Msg("malformed list literal, trying delimiter fallback")
	}

	if strings.Contains(trimmed, "|") {
		parts := strings.Split(trimmed, "|")
		records := make([]Record, 0, len(parts))
		for _, part := range parts {
			records = append(records, Record{"name": strings.TrimSpace(part)})
		}
		return FieldValue{Kind: FieldRecords, Records: records}
	}

	if strings.HasPrefix(trimmed, "[") {
		// Malformed literal with no fallback shape.
		return FieldValue{Kind: FieldMissing}
	}

	return FieldValue{Kind: FieldPlain, Plain: trimmed}
}

// ParseStructured decodes a cell into its record list. A bare scalar or an
// undecodable cell yields an empty list, never an error.
func ParseStructured(text string) []Record {
	fv := DecodeField(text)
	if fv.Kind != FieldRecords {
		return nil
	}
	return fv.Records
}

// ExtractNames pulls the "name" value from each record with internal
// whitespace removed, so multi-word entity names become single tokens for
// the vectorizer. A positive limit truncates the result (used for cast:
// keep only the first N credited names).
func ExtractNames(records []Record, limit int) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		name, ok := rec["name"]
		if !ok {
			continue
		}
		names = append(names, stripSpaces(name))
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names
}

// ExtractDirector scans crew records for the first entry whose "job" is
// "Director". The single-element list form (rather than an optional scalar)
// lets the tag builder concatenate uniformly whether or not one was found.
func ExtractDirector(records []Record) []string {
	for _, rec := range records {
		if rec["job"] == "Director" {
			return []string{stripSpaces(rec["name"])}
		}
	}
	return []string{""}
}

// decodeRecordList parses a list literal into records. Mapping entries become
// Records with stringified values; bare string entries become name records;
// other scalars carry no name information and are dropped.
func decodeRecordList(text string) ([]Record, bool) {
	var raw []interface{}
	if err := json.Unmarshal([]byte(normalizeLiteral(text)), &raw); err != nil {
		return nil, false
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case map[string]interface{}:
			rec := make(Record, len(v))
			for key, val := range v {
				rec[key] = stringifyScalar(val)
			}
			records = append(records, rec)
		case string:
			records = append(records, Record{"name": v})
		}
	}

	return records, true
}

// normalizeLiteral rewrites a Python repr literal into JSON: single-quoted
// strings become double-quoted (escapes adjusted both ways), and the bare
// keywords None/True/False become null/true/false. Double-quoted strings
// pass through untouched, so literals that are already JSON stay valid.
func normalizeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inSingle, inDouble := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]

		switch {
		case inSingle:
			switch ch {
			case '\\':
				if i+1 < len(s) {
					i++
					if s[i] == '\'' {
						b.WriteByte('\'')
					} else {
						b.WriteByte('\\')
						b.WriteByte(s[i])
					}
				}
			case '\'':
				inSingle = false
				b.WriteByte('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteByte(ch)
			}

		case inDouble:
			if ch == '\\' && i+1 < len(s) {
				b.WriteByte(ch)
				i++
				b.WriteByte(s[i])
				continue
			}
			if ch == '"' {
				inDouble = false
			}
			b.WriteByte(ch)

		default:
			switch {
			case ch == '\'':
				inSingle = true
				b.WriteByte('"')
			case ch == '"':
				inDouble = true
				b.WriteByte(ch)
			case hasBareWord(s, i, "None"):
				b.WriteString("null")
				i += 3
			case hasBareWord(s, i, "True"):
				b.WriteString("true")
				i += 3
			case hasBareWord(s, i, "False"):
				b.WriteString("false")
				i += 4
			default:
				b.WriteByte(ch)
			}
		}
	}

	return b.String()
}

// hasBareWord reports whether word starts at s[i] and ends at a non-word
// boundary. String contents never reach here; only bare literal values do.
func hasBareWord(s string, i int, word string) bool {
	if !strings.HasPrefix(s[i:], word) {
		return false
	}
	end := i + len(word)
	if end < len(s) {
		next := s[end]
		if next == '_' || ('a' <= next && next <= 'z') || ('A' <= next && next <= 'Z') || ('0' <= next && next <= '9') {
			return false
		}
	}
	return true
}

// stringifyScalar renders a decoded JSON scalar as a string.
func stringifyScalar(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// stripSpaces removes all whitespace from a string, collapsing multi-word
// names into single vectorizer tokens.
func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// truncateForLog bounds cell excerpts in log output.
func truncateForLog(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
