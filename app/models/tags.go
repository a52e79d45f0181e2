package models

import "strings"

// ParseTags normalizes the comma separated tag field of a post command into
// an ordered list. Surrounding whitespace is trimmed and empty entries are
// dropped, so "" yields an empty, non-nil slice.
func ParseTags(raw string) []string {
	tags := []string{}
	if raw == "" {
		return tags
	}
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// HasTag reports whether tag is one of the post's tags, compared exactly.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
