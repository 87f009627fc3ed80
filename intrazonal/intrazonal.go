package intrazonal

import (
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// factorizers
//*******************************************

// Transform applied to an aggregated neighbour value.
type IFactorizer interface {
	Factor(value float64) float64
}

// factor*x + offset
type SimpleFactorizer struct {
	factor float64
	offset float64
}

func NewSimpleFactorizer(factor, offset float64) *SimpleFactorizer {
	return &SimpleFactorizer{
		factor: factor,
		offset: offset,
	}
}

func (self *SimpleFactorizer) Factor(value float64) float64 {
	return value*self.factor + self.offset
}

// Linear transform with separate parameters for negative inputs, zero counts as positive.
type PositiveNegativeFactorizer struct {
	negative SimpleFactorizer
	positive SimpleFactorizer
}

func NewPositiveNegativeFactorizer(negative_factor, negative_offset, positive_factor, positive_offset float64) *PositiveNegativeFactorizer {
	return &PositiveNegativeFactorizer{
		negative: SimpleFactorizer{negative_factor, negative_offset},
		positive: SimpleFactorizer{positive_factor, positive_offset},
	}
}

func (self *PositiveNegativeFactorizer) Factor(value float64) float64 {
	if value < 0 {
		return self.negative.Factor(value)
	}
	return self.positive.Factor(value)
}

//*******************************************
// intrazonal calculations
//*******************************************

// Estimates the value of a zone to itself from its values to other zones.
type IIntrazonalCalculation interface {
	// values maps destination zones to the value from origin, an entry for
	// origin itself is ignored
	IntrazonalValue(origin int32, values Dict[int32, float64]) float64
}

// Factors the sum of the count largest values.
type MaxFactorCalculation struct {
	factorizer IFactorizer
	count      int
}

func NewMaxFactorCalculation(factorizer IFactorizer, count int) *MaxFactorCalculation {
	return &MaxFactorCalculation{
		factorizer: factorizer,
		count:      count,
	}
}

func (self *MaxFactorCalculation) IntrazonalValue(origin int32, values Dict[int32, float64]) float64 {
	largest := NewMinHeap(self.count)
	for dest, value := range values {
		if dest == origin || self.count == 0 {
			continue
		}
		if !largest.IsFull() {
			largest.Insert(value)
		} else if value > largest.Min() {
			largest.RemoveMin()
			largest.Insert(value)
		}
	}
	return self.factorizer.Factor(largest.Sum())
}

// Factors the sum of the count smallest values.
type MinFactorCalculation struct {
	factorizer IFactorizer
	count      int
}

func NewMinFactorCalculation(factorizer IFactorizer, count int) *MinFactorCalculation {
	return &MinFactorCalculation{
		factorizer: factorizer,
		count:      count,
	}
}

func (self *MinFactorCalculation) IntrazonalValue(origin int32, values Dict[int32, float64]) float64 {
	smallest := NewMaxHeap(self.count)
	for dest, value := range values {
		if dest == origin || self.count == 0 {
			continue
		}
		if !smallest.IsFull() {
			smallest.Insert(value)
		} else if value < smallest.Max() {
			smallest.RemoveMax()
			smallest.Insert(value)
		}
	}
	return self.factorizer.Factor(smallest.Sum())
}

// Replaces the value of every origin to itself by the estimate of calc.
//
// Origins without any other destination are left unchanged.
func ApplyIntrazonals(values Dict[int32, Dict[int32, float64]], calc IIntrazonalCalculation) {
	count := 0
	for origin, row := range values {
		if row.Length() == 0 || (row.Length() == 1 && row.ContainsKey(origin)) {
			continue
		}
		row[origin] = calc.IntrazonalValue(origin, row)
		count += 1
	}
	slog.Info("estimated intrazonal values", "zones", count)
}
