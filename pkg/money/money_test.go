package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "one decimal", input: "0.5", want: 50},
		{name: "whole number", input: "7", want: 700},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-3.25", want: -325},
		{name: "too fine", input: "1.005", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.34", Amount(1234).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "-3.25", Amount(-325).String())
}

func TestFromMajor(t *testing.T) {
	assert.Equal(t, Amount(500), FromMajor(5))
}
