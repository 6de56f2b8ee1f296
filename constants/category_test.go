package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"TECHNOLOGY", Technology, true},
		{"technology", Technology, true},
		{"tech", Technology, true},
		{"electronics", Technology, true},
		{"apparel", Fashion, true},
		{"home essentials", HomeEssentials, true},
		{"HOME_ESSENTIALS", HomeEssentials, true},
		{"household", HomeEssentials, true},
		{" fashion ", Fashion, true},
		{"groceries", Uncategorized, false},
		{"", Uncategorized, false},
	}
	for _, tt := range tests {
		got, ok := Canonicalize(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestAsStringSlice(t *testing.T) {
	assert.Equal(t, []string{"TECHNOLOGY", "FASHION", "HOME_ESSENTIALS", "UNCATEGORIZED"}, AsStringSlice())
}

func TestMapExtToKind(t *testing.T) {
	kind, ok := MapExtToKind(".PDF")
	assert.True(t, ok)
	assert.Equal(t, KindPDF, kind)

	kind, ok = MapExtToKind("jpeg")
	assert.True(t, ok)
	assert.Equal(t, KindImage, kind)

	_, ok = MapExtToKind(".txt")
	assert.False(t, ok)
}
