package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := true
	runes := []rune(raw)
	for i, r := range runes {
		// A minus that starts a token stays attached to its number so "-5" is not read as 5.
		if r == '-' && lastSpace && i+1 < len(runes) && isAmountStart(runes[i+1]) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '$' || r == '.' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' || r == ',' || r == '!' || r == '?' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	out := strings.Trim(b.String(), " .")
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(out, " "))
}

func isAmountStart(r rune) bool {
	return (r >= '0' && r <= '9') || r == '$' || r == '.'
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseQuantityToken reads "5", "25c", "25cents" or "$0.25".
func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if n, err := strconv.Atoi(token); err == nil {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	if strings.HasPrefix(token, "$") {
		if n, ok := parseDollars(strings.TrimPrefix(token, "$")); ok {
			return &Quantity{Raw: token, N: n, Unit: "cents"}
		}
		return nil
	}
	for _, suffix := range []string{"cents", "cent", "c"} {
		if !strings.HasSuffix(token, suffix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSuffix(token, suffix)); err == nil {
			return &Quantity{Raw: token, N: n, Unit: "cents"}
		}
	}
	return nil
}

// parseDollars converts "0.25", "1" or "1.5" to whole cents.
func parseDollars(s string) (int, bool) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, false
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.Atoi(whole)
	if err != nil || w < 0 {
		return 0, false
	}
	c := 0
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, false
		}
		if len(frac) == 1 {
			frac += "0"
		}
		c, err = strconv.Atoi(frac)
		if err != nil || c < 0 {
			return 0, false
		}
	}
	return w*100 + c, true
}

func isUnitWord(token string) bool {
	switch token {
	case "cents", "cent", "c":
		return true
	default:
		return false
	}
}

func isFiller(token string) bool {
	switch token {
	case "at", "for", "per", "cup", "cups", "each", "of", "lemonade", "a", "the", "some", "please", "i", "will", "want", "to":
		return true
	default:
		return false
	}
}

// ParseAmount reads a bare number answer such as "7", "25c" or "$0.25".
func ParseAmount(raw string) (Quantity, bool) {
	if strings.HasPrefix(strings.TrimSpace(raw), "-") {
		return Quantity{}, false
	}
	tokens := tokenise(normaliseInput(raw))
	if len(tokens) == 0 || len(tokens) > 2 {
		return Quantity{}, false
	}
	q := parseQuantityToken(tokens[0])
	if q == nil {
		return Quantity{}, false
	}
	if len(tokens) == 2 {
		if !isUnitWord(tokens[1]) && !isFiller(tokens[1]) {
			return Quantity{}, false
		}
		if isUnitWord(tokens[1]) {
			q.Unit = "cents"
		}
	}
	return *q, true
}
