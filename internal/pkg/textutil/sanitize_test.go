package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToFirstSentence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"keeps only first sentence", "Great dish. Serve warm. Extra.", "Great dish."},
		{"no period returns input unchanged", "No terminator here", "No terminator here"},
		{"period at end", "One sentence.", "One sentence."},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateToFirstSentence(tt.input))
		})
	}
}

func TestStripBoldTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"removes opening and closing tags", "<b>Great</b> dish", "Great dish"},
		{"case insensitive", "<B>Bold</B> text", "Bold text"},
		{"multiple occurrences", "<b>a</b> and <b>b</b>", "a and b"},
		{"no tags", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripBoldTags(tt.input))
		})
	}
}

func TestTruncateAndStripCombined(t *testing.T) {
	out := StripBoldTags(TruncateToFirstSentence("<b>Great</b> dish. Serve warm. Extra."))
	assert.Equal(t, "Great dish.", out)
}

func TestSanitizeInstructionStep(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips leading and trailing step numbers", "3. Preheat oven to 200F 4", "Preheat oven to 200F."},
		{"replaces ampersand", "Mix flour & water", "Mix flour and water."},
		{"unglues run-on sentences", "Stir well.Then serve", "Stir well. Then serve."},
		{"appends missing period", "Bake until golden", "Bake until golden."},
		{"already clean", "Bake.", "Bake."},
		{"leading number without period", "2 Chop the onions", "Chop the onions."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeInstructionStep(tt.input))
		})
	}
}
