package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "sentences only",
			fileContent: `It's not rocket science.
She let the cat out of the bag.`,
			want: []Entry{
				{Sentence: "It's not rocket science.", Tags: []string{}},
				{Sentence: "She let the cat out of the bag.", Tags: []string{}},
			},
		},
		{
			name:        "sentence with word",
			fileContent: "She let the cat out of the bag. | let the cat out of the bag",
			want: []Entry{
				{
					Sentence: "She let the cat out of the bag.",
					Word:     "let the cat out of the bag",
					Tags:     []string{},
				},
			},
		},
		{
			name:        "sentence with word and tags",
			fileContent: "She let the cat out of the bag. | let the cat out of the bag | idioms, movie1",
			want: []Entry{
				{
					Sentence: "She let the cat out of the bag.",
					Word:     "let the cat out of the bag",
					Tags:     []string{"idioms", "movie1"},
				},
			},
		},
		{
			name: "comments and blank lines skipped",
			fileContent: `# mined from episode 3

That wave was gnarly. | gnarly
# another comment
`,
			want: []Entry{
				{Sentence: "That wave was gnarly.", Word: "gnarly", Tags: []string{}},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "First sentence.\r\nSecond sentence.\r\n",
			want: []Entry{
				{Sentence: "First sentence.", Tags: []string{}},
				{Sentence: "Second sentence.", Tags: []string{}},
			},
		},
		{
			name:        "empty word part allowed",
			fileContent: "Some sentence. | | tag1",
			want: []Entry{
				{Sentence: "Some sentence.", Word: "", Tags: []string{"tag1"}},
			},
		},
		{
			name:        "missing sentence rejected",
			fileContent: "| word | tags",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "batch.txt")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to write batch file: %v", err)
			}

			got, err := ReadBatchFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadBatchFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFileMissing(t *testing.T) {
	_, err := ReadBatchFile(filepath.Join(t.TempDir(), "nonexistent.txt"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
