package geom

import (
	"fmt"
	"math"
)

// ScaleMode selects how prices map to vertical coordinates.
type ScaleMode uint8

const (
	// ScaleLinear maps prices proportionally.
	ScaleLinear ScaleMode = iota
	// ScaleLog maps the base-10 logarithm of prices proportionally.
	ScaleLog
)

// String returns the mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleLinear:
		return "linear"
	case ScaleLog:
		return "log"
	default:
		return fmt.Sprintf("ScaleMode(%d)", m)
	}
}

// PriceMapper converts between prices and vertical coordinates.
type PriceMapper interface {
	PriceToCoordinate(price float64) float64
	CoordinateToPrice(coordinate float64) float64
}

// LinearScale is the linear price mapping
// coordinate = Base + (price - BasePrice) * Factor.
type LinearScale struct {
	Base      float64
	BasePrice float64
	Factor    float64
}

// PriceToCoordinate implements PriceMapper.
func (s LinearScale) PriceToCoordinate(price float64) float64 {
	return s.Base + (price-s.BasePrice)*s.Factor
}

// CoordinateToPrice implements PriceMapper.
func (s LinearScale) CoordinateToPrice(coordinate float64) float64 {
	if s.Factor == 0 {
		return math.NaN()
	}
	return s.BasePrice + (coordinate-s.Base)/s.Factor
}

// LogScale maps log10(price) linearly:
// coordinate = Base + (log10(price) - log10(BasePrice)) * Factor.
// Non-positive prices have no coordinate and map to NaN.
type LogScale struct {
	Base      float64
	BasePrice float64
	Factor    float64
}

// PriceToCoordinate implements PriceMapper.
func (s LogScale) PriceToCoordinate(price float64) float64 {
	if price <= 0 || s.BasePrice <= 0 {
		return math.NaN()
	}
	return s.Base + (math.Log10(price)-math.Log10(s.BasePrice))*s.Factor
}

// CoordinateToPrice implements PriceMapper.
func (s LogScale) CoordinateToPrice(coordinate float64) float64 {
	if s.Factor == 0 || s.BasePrice <= 0 {
		return math.NaN()
	}
	return math.Pow(10, math.Log10(s.BasePrice)+(coordinate-s.Base)/s.Factor)
}

// NewRangeScale returns a mapper that places maxPrice at coordinate top and
// minPrice at coordinate bottom. It reports false for an empty or inverted
// price range, or a non-positive range in log mode.
func NewRangeScale(mode ScaleMode, minPrice, maxPrice, top, bottom float64) (PriceMapper, bool) {
	if !(maxPrice > minPrice) || top == bottom {
		return nil, false
	}
	switch mode {
	case ScaleLog:
		if minPrice <= 0 {
			return nil, false
		}
		factor := (top - bottom) / (math.Log10(maxPrice) - math.Log10(minPrice))
		return LogScale{Base: bottom, BasePrice: minPrice, Factor: factor}, true
	default:
		factor := (top - bottom) / (maxPrice - minPrice)
		return LinearScale{Base: bottom, BasePrice: minPrice, Factor: factor}, true
	}
}

// LevelPosition returns the coordinate and price of a level placed at
// coeff between two anchors (c1, p1) and (c2, p2): coeff 0 is the first
// anchor and coeff 1 the second.
//
// On a linear scale the price is interpolated and then converted. On a log
// scale price interpolation would not match what the user sees, so the
// already converted coordinates are interpolated and the price is read back
// from the mapper.
func LevelPosition(mode ScaleMode, c1, c2, p1, p2, coeff float64, m PriceMapper) (coordinate, price float64) {
	if mode == ScaleLog {
		coordinate = c1 + (c2-c1)*coeff
		return coordinate, m.CoordinateToPrice(coordinate)
	}
	price = p1 + (p2-p1)*coeff
	return m.PriceToCoordinate(price), price
}
