package util

import "strings"

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitFields tokenizes a command line on whitespace while keeping single- or
// double-quoted runs together. Quotes are removed from the result.
func SplitFields(line string) ([]string, error) {
	var (
		fields  []string
		current strings.Builder
		quote   rune
		inField bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inField = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inField {
				fields = append(fields, current.String())
				current.Reset()
				inField = false
			}
		default:
			current.WriteRune(r)
			inField = true
		}
	}

	if quote != 0 {
		return nil, &UnterminatedQuoteError{Quote: quote}
	}
	if inField {
		fields = append(fields, current.String())
	}
	return fields, nil
}

// QuoteField quotes arg so that SplitFields returns it as a single field.
// Double quotes inside arg are emitted as '"' runs, which SplitFields joins
// with the surrounding double-quoted text.
func QuoteField(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\r\n\"'") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `"'"'"`) + `"`
}

// UnterminatedQuoteError is returned by SplitFields when a quote is left open.
type UnterminatedQuoteError struct {
	Quote rune
}

func (e *UnterminatedQuoteError) Error() string {
	return "unterminated " + string(e.Quote) + " quote"
}
