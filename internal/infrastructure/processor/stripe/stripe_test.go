package stripe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{name: "typical price", amount: "19.99", want: 1999},
		{name: "whole amount", amount: "1000.00", want: 100000},
		{name: "zero", amount: "0", want: 0},
		{name: "below half a minor unit truncates", amount: "0.004", want: 0},
		{name: "half a minor unit truncates", amount: "0.005", want: 0},
		{name: "just under a minor unit truncates", amount: "0.019", want: 1},
		{name: "single minor unit", amount: "0.01", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, MinorUnits(amount))
		})
	}
}
