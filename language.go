package i18n

import (
	"sort"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps header parsing; 4KB is generous for any
// legitimate Accept-Language value.
const maxAcceptLanguageLength = 4096

type weightedTag struct {
	tag     string
	quality float64
}

// MatchLanguage parses an Accept-Language header and returns the best match
// from the available languages. Quality values are honored, an exact tag
// match beats a base-tag match ("en" vs "en-US"), and ties go to the earlier
// available language. Returns the first available language when nothing
// matches or the header is empty.
func MatchLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" || len(header) > maxAcceptLanguageLength {
		return available[0]
	}

	tags := parseAcceptLanguage(header)

	best := ""
	bestQuality := -1.0
	bestExact := false
	for _, avail := range available {
		norm := normalizeTag(avail)
		for _, t := range tags {
			switch {
			case t.tag == norm:
				if t.quality > bestQuality || (t.quality == bestQuality && !bestExact) {
					best, bestQuality, bestExact = avail, t.quality, true
				}
			case baseTag(t.tag) == baseTag(norm):
				if !bestExact && t.quality > bestQuality {
					best, bestQuality = avail, t.quality
				}
			}
		}
	}

	if best == "" {
		return available[0]
	}
	return best
}

func parseAcceptLanguage(header string) []weightedTag {
	parts := strings.Split(header, ",")
	tags := make([]weightedTag, 0, len(parts))
	for _, part := range parts {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = normalizeTag(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		quality := 1.0
		if q, ok := strings.CutPrefix(strings.ReplaceAll(params, " ", ""), "q="); ok {
			if parsed, err := strconv.ParseFloat(q, 64); err == nil && parsed >= 0 && parsed <= 1 {
				quality = parsed
			}
		}
		if quality == 0 {
			continue
		}
		tags = append(tags, weightedTag{tag: tag, quality: quality})
	}

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].quality > tags[j].quality })
	return tags
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
}

func baseTag(tag string) string {
	base, _, _ := strings.Cut(tag, "-")
	return base
}
