package ingest

import (
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name string
		text string
		cfg  ChunkerConfig
		want []string
	}{
		{
			name: "empty input",
			text: "",
			cfg:  DefaultChunkerConfig(),
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t   ",
			cfg:  DefaultChunkerConfig(),
			want: nil,
		},
		{
			name: "single sentence fits",
			text: "Hello world.",
			cfg:  ChunkerConfig{MaxTokens: 10},
			want: []string{"Hello world."},
		},
		{
			name: "two sentences fit in one chunk",
			text: "Hello world. How are you?",
			cfg:  ChunkerConfig{MaxTokens: 10},
			want: []string{"Hello world. How are you?"},
		},
		{
			name: "split at sentence boundary",
			// "First sentence." encodes to 3 tokens in cl100k_base.
			text: "First sentence. Second sentence.",
			cfg:  ChunkerConfig{MaxTokens: 3},
			want: []string{"First sentence.", "Second sentence."},
		},
		{
			name: "overlap carries the previous sentence",
			// Each sentence is 3 tokens; two fit per chunk, one overlaps.
			text: "First sentence. Second sentence. Third sentence.",
			cfg:  ChunkerConfig{MaxTokens: 6, OverlapTokens: 3},
			want: []string{
				"First sentence. Second sentence.",
				"Second sentence. Third sentence.",
			},
		},
		{
			name: "oversized sentence hard-split by tokens",
			text: "One two three four five six.",
			cfg:  ChunkerConfig{MaxTokens: 3},
			want: []string{"One two three", "four five six", "."},
		},
		{
			name: "paragraphs merge with soft wraps removed",
			text: "Para one.\n\nPara two.",
			cfg:  ChunkerConfig{MaxTokens: 10},
			want: []string{"Para one. Para two."},
		},
		{
			name: "cjk sentence terminators",
			text: "你好世界。这是一个测试。",
			cfg:  ChunkerConfig{MaxTokens: 40},
			want: []string{"你好世界。 这是一个测试。"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.text, tt.cfg)

			if len(chunks) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(tt.want), chunks)
			}
			for i, chunk := range chunks {
				if chunk.Text != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, chunk.Text, tt.want[i])
				}
				if chunk.Index != i {
					t.Errorf("chunk %d carries index %d", i, chunk.Index)
				}
			}
		})
	}
}

func TestCountTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Hello", 1},
		{"Hello world", 2},
		{"Hello, world!", 4},
		{"", 0},
		{"Привет", 3},
	}

	for _, tt := range tests {
		if got := countTokens(tt.text); got != tt.want {
			t.Errorf("countTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("Hello world. How are you? I am fine.")

	want := []string{"Hello world.", "How are you?", "I am fine."}
	if len(sentences) != len(want) {
		t.Fatalf("got %d sentences, want %d", len(sentences), len(want))
	}
	for i, s := range sentences {
		if s != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, s, want[i])
		}
	}
}
