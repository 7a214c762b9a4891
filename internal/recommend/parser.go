package recommend

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedReply is the structured form of the oracle's free-text answer.
type ParsedReply struct {
	Indices       []int // 0-based, validated against the candidate count
	PriorityIndex int   // 0-based, always one of Indices
	Explanation   string
}

var (
	intPattern      = regexp.MustCompile(`\d+`)
	variantsLineRe  = regexp.MustCompile(`(?i)варіант|variant`)
	priorityLineRe  = regexp.MustCompile(`(?i)пріоритет|priority`)
	explanationTrim = regexp.MustCompile(`^\s*[-–:.\s]+`)
)

// ParseReply extracts the selected candidate indices, the priority and
// the rationale from the oracle's reply. It never fails hard: malformed
// input of any shape yields ok=false, which routes the caller to the
// local fallback.
func ParseReply(reply string, numCandidates int) (ParsedReply, bool) {
	if numCandidates <= 0 {
		return ParsedReply{}, false
	}

	lines := strings.Split(reply, "\n")

	variantsLine := ""
	for _, line := range lines {
		if variantsLineRe.MatchString(line) && intPattern.MatchString(line) {
			variantsLine = line
			break
		}
	}
	if variantsLine == "" {
		// Loose fallback: the first line that carries any digits.
		for _, line := range lines {
			if priorityLineRe.MatchString(line) {
				continue
			}
			if intPattern.MatchString(line) {
				variantsLine = line
				break
			}
		}
	}
	if variantsLine == "" {
		return ParsedReply{}, false
	}

	var indices []int
	for _, raw := range intPattern.FindAllString(variantsLine, -1) {
		if len(indices) == 2 {
			break
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		idx := n - 1 // oracle speaks 1-based
		if idx < 0 || idx >= numCandidates {
			continue
		}
		if len(indices) == 1 && indices[0] == idx {
			continue
		}
		indices = append(indices, idx)
	}
	if len(indices) == 0 {
		return ParsedReply{}, false
	}

	parsed := ParsedReply{Indices: indices, PriorityIndex: indices[0]}

	for _, line := range lines {
		if !priorityLineRe.MatchString(line) {
			continue
		}
		if raw := intPattern.FindString(line); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				idx := n - 1
				for _, sel := range indices {
					if sel == idx {
						parsed.PriorityIndex = idx
						break
					}
				}
			}
		}
		parsed.Explanation = extractExplanation(line)
		break
	}

	return parsed, true
}

// extractExplanation strips the "Пріоритет: N -" prefix off the priority
// line, leaving the free-text rationale.
func extractExplanation(line string) string {
	if loc := intPattern.FindStringIndex(line); loc != nil {
		line = line[loc[1]:]
	}
	return strings.TrimSpace(explanationTrim.ReplaceAllString(line, ""))
}
