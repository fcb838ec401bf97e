package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownWithStyle(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		style        string
		wantContains []string
	}{
		{name: "empty string", input: "", style: "dark"},
		{name: "plain text", input: "Hello world", style: "dark", wantContains: []string{"Hello world"}},
		{name: "heading", input: "# Main Title", style: "light", wantContains: []string{"Main Title"}},
		{name: "default style", input: "**bold**", style: "", wantContains: []string{"bold"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderMarkdownWithStyle(tt.input, 80, tt.style))
			if tt.input == "" && got != "" {
				t.Errorf("expected empty output, got %q", got)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
		})
	}
}

func TestPreviewLink(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "block reference",
			text: `((20240101120000-abcdefg "2024-01-01"))`,
			want: []string{"2024-01-01", "20240101120000-abcdefg"},
		},
		{
			name: "url link",
			text: "[2024-01-01](siyuan://blocks/20240101120000-abcdefg)",
			want: []string{"2024-01-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(PreviewLink(tt.text, 100, "dark"))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("preview %q does not contain %q", got, w)
				}
			}
		})
	}
}
