package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// parseKeyValue reads postgresql.conf style text: one setting per line as
// "key = value" or "key value", "#" starting a comment outside single quotes.
// Later settings override earlier ones, as the server itself does.
func parseKeyValue(text, kind string) (Document, error) {
	fields := make(map[string]any)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		key, value, err := splitSetting(line)
		if err != nil {
			return Document{}, &ParseError{Index: 0, Line: i + 1, Err: err}
		}
		fields[key] = value
	}
	if len(fields) == 0 {
		return Document{}, &ParseError{Err: errors.New("no settings found")}
	}
	return Document{Index: 0, Kind: kind, Fields: fields}, nil
}

func splitSetting(line string) (string, string, error) {
	end := strings.IndexFunc(line, func(r rune) bool {
		return r == '=' || unicode.IsSpace(r)
	})
	if end <= 0 {
		if end == 0 {
			return "", "", errors.New("missing setting name")
		}
		return "", "", fmt.Errorf("setting %q has no value", line)
	}

	key := line[:end]
	if !validKey(key) {
		return "", "", fmt.Errorf("invalid setting name %q", key)
	}

	rest := strings.TrimSpace(line[end:])
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
	if rest == "" {
		return "", "", fmt.Errorf("setting %q has no value", key)
	}
	if strings.HasPrefix(rest, "'") && (len(rest) < 2 || !strings.HasSuffix(rest, "'")) {
		return "", "", fmt.Errorf("setting %q has an unterminated quoted value", key)
	}
	return key, rest, nil
}

func validKey(key string) bool {
	for i, r := range key {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '.' || r == '-'):
		default:
			return false
		}
	}
	return true
}

func stripComment(line string) string {
	quoted := false
	for i, r := range line {
		switch r {
		case '\'':
			quoted = !quoted
		case '#':
			if !quoted {
				return line[:i]
			}
		}
	}
	return line
}
