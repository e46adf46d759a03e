package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTidy(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  hello   world  ", "hello world"},
		{"line\none\n\tline two", "line one line two"},
		{"", ""},
		{"   ", ""},
		{"already tidy", "already tidy"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Tidy(tc.input))
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://arknights.wiki.gg"

	testCases := []struct {
		input    string
		expected string
	}{
		{"//example.com/img.png", "https://example.com/img.png"},
		{"/wiki/img.png", "https://arknights.wiki.gg/wiki/img.png"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"", ""},
		{"  /wiki/Amiya  ", "https://arknights.wiki.gg/wiki/Amiya"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, AbsoluteURL(tc.input, base))
	}
}
