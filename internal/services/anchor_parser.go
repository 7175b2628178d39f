package services

import (
	"regexp"
	"strings"
)

// Anchor is a user-pinned "must include" activity extracted from free text,
// tied to a time-of-day bucket or an explicit time.
type Anchor struct {
	Activity  string
	TimeOfDay string
	Time      string
}

// Pattern families, evaluated in order; the first family that matches wins,
// except the generic family which collects every occurrence. Matching is
// intentionally loose.
var (
	// "in the morning ... go to <place>" / "tonight we visit <place>"
	reAnchorTimeFirst = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|tonight|night)\b.*?\b(?:go to|visit)\s+(.+?)(?:[.,!?;]|$)`)
	// "go to <place> in the morning"
	reAnchorTimeAfter = regexp.MustCompile(`(?i)\b(?:go to|visit)\s+(.+?)\s+in the (morning|afternoon|evening)\b`)
	// "want to visit <place>", "need to go to <place>" — collects all
	reAnchorGeneric = regexp.MustCompile(`(?i)\b(?:want to|have to|going to|need to)\s+(?:go to|visit)\s+(.+?)(?:[.,!?;]|$)`)
	// "<X> then <Y>" — only consulted when nothing else matched
	reAnchorThen = regexp.MustCompile(`(?i)^(.+?)\s+then\s+(.+)$`)

	reExplicitTime = regexp.MustCompile(`(?i)\bat\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\b`)
)

// ParseAnchors extracts anchors from a free-text request. An empty result
// classifies the request as generic and the generator runs unconstrained.
func ParseAnchors(message string) []Anchor {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return nil
	}

	if m := reAnchorTimeFirst.FindStringSubmatch(msg); m != nil {
		return []Anchor{newAnchor(m[2], m[1])}
	}

	if m := reAnchorTimeAfter.FindStringSubmatch(msg); m != nil {
		return []Anchor{newAnchor(m[1], m[2])}
	}

	var anchors []Anchor
	for _, m := range reAnchorGeneric.FindAllStringSubmatch(msg, -1) {
		anchors = append(anchors, newAnchor(m[1], ""))
	}
	if len(anchors) > 0 {
		return anchors
	}

	if m := reAnchorThen.FindStringSubmatch(msg); m != nil {
		return []Anchor{
			newAnchor(m[1], "morning"),
			newAnchor(m[2], "evening"),
		}
	}

	return nil
}

func newAnchor(activity, timeOfDay string) Anchor {
	activity = strings.TrimSpace(activity)
	explicit := ""
	if m := reExplicitTime.FindStringSubmatch(activity); m != nil {
		explicit = strings.TrimSpace(m[1])
		activity = strings.TrimSpace(reExplicitTime.ReplaceAllString(activity, ""))
	}
	return Anchor{
		Activity:  activity,
		TimeOfDay: normalizeTimeOfDay(timeOfDay),
		Time:      explicit,
	}
}

func normalizeTimeOfDay(s string) string {
	switch strings.ToLower(s) {
	case "tonight", "night":
		return "evening"
	default:
		return strings.ToLower(s)
	}
}
