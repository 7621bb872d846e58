package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGradeRange_NumericPair(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		wantMin  int
		wantMax  int
	}{
		{"simple pair", "AG 7/8", 7, 8},
		{"reversed pair normalises", "10/9", 9, 10},
		{"pair with spaces", "Session 3 / 4", 3, 4},
		{"equal pair", "6/6", 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := ExtractGradeRange(tt.label)
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}

func TestExtractGradeRange_OrdinalRange(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantMin int
		wantMax int
	}{
		{"hyphen with suffixes", "AG 7th-8th", 7, 8},
		{"en dash", "AG 7th–8th", 7, 8},
		{"ampersand", "5th & 6th", 5, 6},
		{"no suffixes", "Juniors 3-4", 3, 4},
		{"mixed suffixes", "1st-2", 1, 2},
		{"reversed normalises", "8th-7th", 7, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := ExtractGradeRange(tt.label)
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}

func TestExtractGradeRange_SingleAGGrade(t *testing.T) {
	min, max := ExtractGradeRange("AG-8")
	assert.Equal(t, 8, min)
	assert.Equal(t, 8, max)

	min, max = ExtractGradeRange("ag 10")
	assert.Equal(t, 10, min)
	assert.Equal(t, 10, max)
}

func TestExtractGradeRange_NumericPairWinsOverOrdinal(t *testing.T) {
	// First-match-wins across matchers in priority order.
	min, max := ExtractGradeRange("AG 7/8 (7th-9th)")
	assert.Equal(t, 7, min)
	assert.Equal(t, 8, max)
}

func TestExtractGradeRange_Unparseable(t *testing.T) {
	for _, label := range []string{"AG Cabin", "B-West", "The Lodge", ""} {
		min, max := ExtractGradeRange(label)
		assert.Equal(t, 0, min, "label %q", label)
		assert.Equal(t, 0, max, "label %q", label)
		assert.True(t, IsUnparseableRange(min, max))
	}
}

func TestGradeInRange(t *testing.T) {
	assert.True(t, GradeInRange(7, 7, 8))
	assert.True(t, GradeInRange(8, 7, 8))
	assert.False(t, GradeInRange(6, 7, 8))
	assert.False(t, GradeInRange(9, 7, 8))
}

func TestGradesOverlap(t *testing.T) {
	// Touching endpoints count as overlapping.
	assert.True(t, GradesOverlap(7, 8, 8, 9))
	// Gap.
	assert.False(t, GradesOverlap(7, 8, 10, 11))
	// Containment.
	assert.True(t, GradesOverlap(5, 10, 6, 7))
}

func TestGradesOverlap_Symmetric(t *testing.T) {
	cases := [][4]int{
		{7, 8, 8, 9},
		{7, 8, 10, 11},
		{1, 3, 2, 5},
		{4, 4, 4, 4},
	}
	for _, c := range cases {
		assert.Equal(t,
			GradesOverlap(c[0], c[1], c[2], c[3]),
			GradesOverlap(c[2], c[3], c[0], c[1]),
			"intervals %v", c)
	}
}
