package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase and trim", "  Garlic  ", "garlic"},
		{"punctuation", "Salt & Pepper, to taste!", "salt  pepper to taste"},
		{"digits kept", "2 Eggs", "2 eggs"},
		{"accents folded", "Jalapeño", "jalapeno"},
		{"only punctuation", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", " ", "Crème Fraîche", "Extra-Virgin Olive Oil (cold pressed)", "½ cup Milk", "鹽 & 胡椒", "\tTAB\n",
		// 過濾標點後才相鄰的韓文字母
		"ᄀ!ᅡ", "ᄀ-ᅡᆨ sauce", "e\u0301!"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeComposesAfterFiltering(t *testing.T) {
	assert.Equal(t, "가", Normalize("ᄀ!ᅡ"))
	assert.Equal(t, "각 sauce", Normalize("ᄀ-ᅡᆨ sauce"))
}
