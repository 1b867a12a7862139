package pipeline

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{name: "empty", source: "", want: []string{}},
		{name: "whitespace only", source: "  \t ", want: []string{}},
		{name: "single tag", source: "idioms", want: []string{"idioms"}},
		{name: "two tags", source: "idioms, movie1", want: []string{"idioms", "movie1"}},
		{name: "padded tags", source: "  idioms ,movie1  ", want: []string{"idioms", "movie1"}},
		{name: "empty segments dropped", source: "idioms,,movie1,", want: []string{"idioms", "movie1"}},
		{name: "only commas", source: ",,,", want: []string{}},
		{name: "inner spaces kept", source: "phrasal verbs, b2", want: []string{"phrasal verbs", "b2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.source)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestRenderTags(t *testing.T) {
	if got := RenderTags([]string{"idioms", "movie1"}); got != "idioms, movie1" {
		t.Errorf("RenderTags() = %q", got)
	}
	if got := RenderTags(nil); got != "" {
		t.Errorf("RenderTags(nil) = %q, want empty", got)
	}
}

// A parse-render-parse round trip must not change the tag list.
func TestParseTagsRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"idioms",
		"idioms, movie1",
		"  a ,, b ,c  ",
		", , ,",
		"phrasal verbs,b2,  season 2 ",
	}

	for _, source := range sources {
		first := ParseTags(source)
		second := ParseTags(RenderTags(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Round trip changed %q: %v -> %v", source, first, second)
		}
	}
}
