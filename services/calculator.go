package services

import "fmt"

// Calculator provides the step-by-step arithmetic the pricing specialist
// uses so dollar math never depends on model arithmetic. All results are
// rounded to cents.
type Calculator struct{}

// NewCalculator returns the shared pricing calculator.
func NewCalculator() *Calculator { return &Calculator{} }

// Add returns a + b.
func (Calculator) Add(a, b float64) float64 { return round2(a + b) }

// Subtract returns a - b.
func (Calculator) Subtract(a, b float64) float64 { return round2(a - b) }

// Multiply returns a * b.
func (Calculator) Multiply(a, b float64) float64 { return round2(a * b) }

// Divide returns a / b, rejecting a zero divisor.
func (Calculator) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("cannot divide by zero")
	}
	return round2(a / b), nil
}

// Percentage returns pct percent of amount (20% of 100 = 20).
func (Calculator) Percentage(amount, pct float64) float64 {
	return round2(amount * (pct / 100))
}

// ApplyMinimum returns the larger of value and minimum.
func (Calculator) ApplyMinimum(value, minimum float64) float64 {
	return round2(maxFloat(value, minimum))
}

// ApplyMaximum returns the smaller of value and maximum (a cap).
func (Calculator) ApplyMaximum(value, maximum float64) float64 {
	return round2(minFloat(value, maximum))
}
