package locale_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/locale"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical", "en-US", "en-US"},
		{"lowercase", "en-us", "en-US"},
		{"underscore", "nl_NL", "nl-NL"},
		{"language only", "DE", "de"},
		{"spaces", "  fr-FR ", "fr-FR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := locale.Normalize(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"", "not a tag", "en_US!"} {
			_, err := locale.Normalize(input)
			require.ErrorIs(t, err, locale.ErrInvalidTag, input)
		}
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	available := []string{"en-US", "nl-NL", "de-DE"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"exact", "nl-NL", "nl-NL"},
		{"quality order", "fr;q=0.9,de-DE;q=0.8,nl-NL;q=0.5", "de-DE"},
		{"base language", "nl", "nl-NL"},
		{"regional variant", "de-AT", "de-DE"},
		{"no match", "ja-JP", "en-US"},
		{"empty header", "", "en-US"},
		{"wildcard", "*", "en-US"},
		{"malformed", ";;;q=", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, locale.Match(tt.header, available))
		})
	}

	t.Run("nothing available", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, locale.Match("en-US", nil))
	})

	t.Run("oversized header", func(t *testing.T) {
		t.Parallel()
		header := strings.Repeat("nl-NL,", 2000)
		require.Contains(t, available, locale.Match(header, available))
	})
}
