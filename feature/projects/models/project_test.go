package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreateDefaults(t *testing.T) {
	p := &Project{Name: "Roadmap"}
	require.NoError(t, p.BeforeCreate(nil))
	assert.Len(t, p.ID, 36)
	assert.Equal(t, StatusPlanned, p.Status)

	p = &Project{ID: "fixed", Status: StatusActive}
	require.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, "fixed", p.ID)
	assert.Equal(t, StatusActive, p.Status)
}

func TestNormalizeName(t *testing.T) {
	name, err := NormalizeName("  Roadmap ")
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", name)

	_, err = NormalizeName("   ")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NormalizeName(strings.Repeat("x", 151))
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestNormalizeDescription(t *testing.T) {
	d, err := NormalizeDescription("")
	require.NoError(t, err)
	assert.Empty(t, d)

	_, err = NormalizeDescription(strings.Repeat("x", 2001))
	assert.ErrorIs(t, err, ErrInvalidDescription)
}

func TestValidateStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.NoError(t, ValidateStatus(s))
	}
	assert.ErrorIs(t, ValidateStatus("done"), ErrInvalidStatus)
	assert.ErrorIs(t, ValidateStatus(""), ErrInvalidStatus)
}

func TestObjectKeyFor(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"Plain", "report.pdf", "projects/p1/a1/report.pdf"},
		{"Traversal", "../../etc/passwd", "projects/p1/a1/passwd"},
		{"WindowsPath", `C:\Users\ada\notes.txt`, "projects/p1/a1/notes.txt"},
		{"Empty", "", "projects/p1/a1/file"},
		{"Dots", "..", "projects/p1/a1/file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKeyFor("p1", "a1", tt.file))
		})
	}
}

func TestSanitizeFileName_Long(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"ASCII", strings.Repeat("a", 300) + ".pdf"},
		{"TwoByteRunes", strings.Repeat("é", 100) + "a.pdf"},
		{"FourByteRunes", strings.Repeat("😀", 80) + ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFileName(tt.in)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), maxFileNameBytes)
			assert.True(t, strings.HasSuffix(tt.in, got))
		})
	}
}

func TestSanitizeFileName_InvalidUTF8(t *testing.T) {
	got := SanitizeFileName("rep\xffort.pdf")
	assert.Equal(t, "report.pdf", got)
}
