package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIdealStock(t *testing.T) {
	assert.Equal(t, 0, IdealStock(0))
	assert.Equal(t, 2, IdealStock(1))
	assert.Equal(t, 8, IdealStock(5))
	assert.Equal(t, 6, IdealStock(4))
}

func TestSuggestedOrder(t *testing.T) {
	assert.Equal(t, 6, SuggestedOrder(2, 5))
	assert.Equal(t, 0, SuggestedOrder(20, 5))
	assert.Equal(t, 11, SuggestedOrder(-3, 5))
}

func TestGrossMarginPct(t *testing.T) {
	assert.True(t, decimal.NewFromInt(50).Equal(GrossMarginPct(decimal.NewFromInt(10), decimal.NewFromInt(20))))
	assert.True(t, decimal.RequireFromString("33.33").Equal(GrossMarginPct(decimal.NewFromInt(20), decimal.NewFromInt(30))))
	assert.True(t, GrossMarginPct(decimal.NewFromInt(10), decimal.Zero).IsZero())
}
