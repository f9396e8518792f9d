package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// cleanJSONResponse strips code fences and surrounding prose from an
// LLM response, leaving the outermost JSON object.
func cleanJSONResponse(text string) string {
	// Prefer fenced blocks that contain an object
	for _, match := range codeBlockRe.FindAllStringSubmatch(text, -1) {
		cleaned := strings.TrimSpace(match[1])
		if strings.HasPrefix(cleaned, "{") && strings.Contains(cleaned, "}") {
			return cleaned
		}
	}

	// Fall back to the widest brace span
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// repairJSON applies the common fixes for almost-JSON model output:
// single-quoted strings, trailing commas, unclosed objects and arrays.
func repairJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "'", `"`)
	text = trailingCommaRe.ReplaceAllString(text, "$1")

	if !strings.HasPrefix(text, "{") {
		text = "{" + text
	}

	// Close whatever the model left open, innermost first.
	var stack []byte
	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '[' {
			text += "]"
		} else {
			text += "}"
		}
	}
	return text
}

// decodeLenient unmarshals a cleaned LLM response into out. On a parse
// failure it repairs the text once and retries; a second failure leaves
// out at its zero value and reports false. Parse errors never propagate
// past this boundary.
func decodeLenient(text string, out any) bool {
	cleaned := cleanJSONResponse(text)
	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return true
	}
	if err := json.Unmarshal([]byte(repairJSON(cleaned)), out); err == nil {
		return true
	}
	return false
}

// clampYears maps negative or absurd year counts to sane values.
func clampYears(years float64) float64 {
	if years < 0 {
		return 0
	}
	return years
}

// validGraduationYear reports whether y is a plausible graduation year.
func validGraduationYear(y int) bool {
	return y >= 1900 && y <= 2100
}
