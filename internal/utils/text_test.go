package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		cleaned bool
	}{
		{name: "valid", input: "Pierna A", want: "Pierna A"},
		{name: "accents kept", input: "Miércoles", want: "Miércoles"},
		{name: "nul removed", input: "Pier\x00na", want: "Pierna", cleaned: true},
		{name: "invalid utf8 removed", input: "Pierna\xff", want: "Pierna", cleaned: true},
		{name: "only invalid", input: "\xff\xfe", want: "", cleaned: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cleaned := CleanText(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cleaned, cleaned)
		})
	}
}
