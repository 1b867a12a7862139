package pipeline

import "strings"

// ParseTags splits a comma-separated tag source string into individual
// tags. Each tag is trimmed and empty tags are dropped, so an all-empty
// source yields an empty slice.
func ParseTags(source string) []string {
	tags := []string{}
	for _, tag := range strings.Split(source, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// RenderTags formats tags back into a tag source string
func RenderTags(tags []string) string {
	return strings.Join(tags, ", ")
}
