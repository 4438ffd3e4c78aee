package paneview

import (
	"math"

	"github.com/gogpu/chartdraw/geom"
)

// DomainPoint is a point of a drawing in chart space: a (possibly
// fractional) bar index and a price.
type DomainPoint struct {
	Index float64
	Price float64
}

// PriceScale converts prices of the pane the drawing lives on.
type PriceScale interface {
	// IsEmpty reports a collapsed or not yet known price range.
	IsEmpty() bool
	IsLog() bool
	PriceToCoordinate(price, firstValue float64) float64
	CoordinateToPrice(coordinate, firstValue float64) float64
}

// TimeScale converts bar indices to horizontal coordinates.
type TimeScale interface {
	IndexToCoordinate(index float64) float64
}

// OwnerSource is the series a drawing is attached to.
type OwnerSource interface {
	// FirstValue is the reference price for percentage and indexed scales.
	// It reports false while the series has no data.
	FirstValue() (float64, bool)
}

// Source is the model of one drawing as seen by its view. Views only read
// from it.
type Source[P any] interface {
	Points() []DomainPoint
	Properties() P
	PriceScale() PriceScale
	TimeScale() TimeScale
	OwnerSource() OwnerSource
}

// Static is a Source holding fixed values, for hosts that keep drawings in
// plain structs and for tests.
type Static[P any] struct {
	DomainPoints []DomainPoint
	Props        P
	Price        PriceScale
	Time         TimeScale
	Owner        OwnerSource
}

func (s *Static[P]) Points() []DomainPoint    { return s.DomainPoints }
func (s *Static[P]) Properties() P            { return s.Props }
func (s *Static[P]) PriceScale() PriceScale   { return s.Price }
func (s *Static[P]) TimeScale() TimeScale     { return s.Time }
func (s *Static[P]) OwnerSource() OwnerSource { return s.Owner }

// MapperScale adapts a geom.PriceMapper to PriceScale. The first value is
// ignored; a nil mapper is an empty scale.
type MapperScale struct {
	Mapper geom.PriceMapper
	Mode   geom.ScaleMode
}

func (s MapperScale) IsEmpty() bool { return s.Mapper == nil }
func (s MapperScale) IsLog() bool   { return s.Mode == geom.ScaleLog }

func (s MapperScale) PriceToCoordinate(price, _ float64) float64 {
	return s.Mapper.PriceToCoordinate(price)
}

func (s MapperScale) CoordinateToPrice(coordinate, _ float64) float64 {
	return s.Mapper.CoordinateToPrice(coordinate)
}

// BarScale places bar i at Offset + i*Spacing.
type BarScale struct {
	Offset  float64
	Spacing float64
}

func (s BarScale) IndexToCoordinate(index float64) float64 {
	return s.Offset + index*s.Spacing
}

// FirstValue is an OwnerSource with a fixed first value. NaN means the
// series has no data.
type FirstValue float64

func (v FirstValue) FirstValue() (float64, bool) {
	return float64(v), !math.IsNaN(float64(v))
}

// boundScale binds a PriceScale to a first value so it can be used as a
// geom.PriceMapper.
type boundScale struct {
	scale PriceScale
	first float64
}

func (b boundScale) PriceToCoordinate(price float64) float64 {
	return b.scale.PriceToCoordinate(price, b.first)
}

func (b boundScale) CoordinateToPrice(coordinate float64) float64 {
	return b.scale.CoordinateToPrice(coordinate, b.first)
}

func (b boundScale) mode() geom.ScaleMode {
	if b.scale.IsLog() {
		return geom.ScaleLog
	}
	return geom.ScaleLinear
}
