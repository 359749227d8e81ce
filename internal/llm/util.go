package llm

import "strings"

// CleanJSONBlock returns the first balanced JSON object or array in a model
// reply, dropping a markdown fence and any prose around it. A reply with no
// complete value is returned trimmed so the decoder reports the problem.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if value := balancedJSON(text[start:]); value != "" {
		return value
	}
	return text
}

// stripCodeFence removes a ``` fence and its language tag.
func stripCodeFence(text string) string {
	body, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}
	if tag, rest, found := strings.Cut(body, "\n"); found && !strings.ContainsAny(tag, " {[") {
		body = rest
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// balancedJSON returns the prefix of s that closes the object or array s
// opens with, or "" when it never closes. Brackets inside strings are
// ignored.
func balancedJSON(s string) string {
	opener := s[0]
	closer := byte('}')
	if opener == '[' {
		closer = ']'
	}

	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == opener:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
