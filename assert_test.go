package chartdraw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scale interface{ Height() float64 }

type fixedScale struct{}

func (*fixedScale) Height() float64 { return 1 }

func contractPanic(t *testing.T, f func()) *ContractError {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		f()
	}()
	require.NotNil(t, got, "expected a panic")
	err, ok := got.(error)
	require.True(t, ok, "panic value %T is not an error", got)
	var ce *ContractError
	require.True(t, errors.As(err, &ce))
	return ce
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "fine") })
	ce := contractPanic(t, func() { Assert(false, "points required") })
	assert.Equal(t, "chartdraw: contract violation: points required", ce.Error())
}

func TestEnsure(t *testing.T) {
	s := &fixedScale{}
	assert.Same(t, s, Ensure(s, "scale"))
	assert.Equal(t, 0, Ensure(0, "zero values of non-nillable kinds pass"))

	ce := contractPanic(t, func() { Ensure[scale](nil, "price scale") })
	assert.Equal(t, "price scale is nil", ce.Msg)

	var typed *fixedScale
	ce = contractPanic(t, func() { Ensure[scale](typed, "time scale") })
	assert.Equal(t, "time scale is nil", ce.Msg)

	contractPanic(t, func() { Ensure[map[string]int](nil, "map") })
	contractPanic(t, func() { Ensure[func()](nil, "func") })
}
