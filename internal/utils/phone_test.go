package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "9000000001", want: "9000000001", ok: true},
		{in: "+91 90000 00001", want: "9000000001", ok: true},
		{in: "919000000001", want: "9000000001", ok: true},
		{in: "09000000001", want: "9000000001", ok: true},
		{in: "90-0000-0001", want: "9000000001", ok: true},
		// "91" kept when it is part of a bare 10-digit number.
		{in: "9190000000", want: "9190000000", ok: true},
		{in: "12345", ok: false},
		{in: "900000000012", ok: false},
		{in: "", ok: false},
		{in: "abcdefghij", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizePhone(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
