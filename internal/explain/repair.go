package explain

import "strings"

// The model is adversarial to strict parsers: it wraps JSON in fenced code
// blocks, prepends commentary, and truncates output at the token ceiling.
// Each repair step is a pure text transform handling one observed failure
// class, and each is a no-op when its failure class is absent, so the
// pipeline is safe to apply unconditionally.

// repairSteps are applied in order by Repair.
var repairSteps = []func(string) string{
	ExtractFencedBlock,
	SliceToBraces,
	RepairTruncated,
}

// Repair runs the full repair pipeline over raw model output.
func Repair(s string) string {
	for _, step := range repairSteps {
		s = step(s)
	}
	return s
}

// ExtractFencedBlock returns the interior of a ```json fenced block if one is
// present, else the interior of the first fenced block of any kind, else the
// input trimmed.
func ExtractFencedBlock(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		rest := s[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
		return strings.TrimSpace(rest)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+len("```"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}

// SliceToBraces discards leading and trailing commentary around a JSON object
// by slicing from the first '{' to the last '}'. Input already starting with
// '{' passes through unchanged.
func SliceToBraces(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		return s
	}
	start := strings.Index(s, "{")
	if start < 0 {
		return s
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		// No closing brace at all; truncation repair closes it.
		return s[start:]
	}
	return s[start : end+1]
}

// RepairTruncated structurally closes JSON cut off mid-object by the model's
// output-length ceiling: it strips a dangling trailing comma, terminates an
// unterminated string when the quote count is odd, and appends the closers
// for still-open braces and brackets in last-opened-first-closed order.
func RepairTruncated(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || strings.HasSuffix(s, "}") {
		return s
	}

	s = strings.TrimSuffix(s, ",")

	if strings.Count(s, `"`)%2 == 1 {
		s += `"`
	}

	// Track open braces/brackets outside string literals; closing order
	// must mirror opening order or a cut inside a nested structure (an
	// object inside the key_points array, typically) closes wrong.
	var open []byte
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
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
			open = append(open, c)
		case '}':
			if n := len(open); n > 0 && open[n-1] == '{' {
				open = open[:n-1]
			}
		case ']':
			if n := len(open); n > 0 && open[n-1] == '[' {
				open = open[:n-1]
			}
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == '{' {
			s += "}"
		} else {
			s += "]"
		}
	}
	return s
}
