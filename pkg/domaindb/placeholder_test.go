package domaindb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		template     string
		placeholders domaindb.M
		want         string
	}{
		{name: "no placeholders", template: "Hello", placeholders: domaindb.M{"name": "x"}, want: "Hello"},
		{name: "nil map", template: "Hello, {{name}}", placeholders: nil, want: "Hello, {{name}}"},
		{name: "single", template: "Hello, {{name}}", placeholders: domaindb.M{"name": "Ada"}, want: "Hello, Ada"},
		{name: "repeated", template: "{{x}}-{{x}}", placeholders: domaindb.M{"x": 1}, want: "1-1"},
		{name: "unknown kept", template: "{{a}} {{b}}", placeholders: domaindb.M{"a": "A"}, want: "A {{b}}"},
		{name: "no recursive substitution", template: "{{a}}", placeholders: domaindb.M{"a": "{{b}}", "b": "B"}, want: "{{b}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, domaindb.ReplacePlaceholders(tt.template, tt.placeholders))
		})
	}
}
