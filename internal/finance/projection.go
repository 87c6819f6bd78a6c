// Package finance holds stateless projection math. It performs no I/O
// and never writes back to the ledger: inputs are plain numbers pulled
// from the read-side aggregations, outputs feed what-if visualizations.
package finance

import "centavo/internal/models"

// AverageMonthlySavings estimates the monthly savings rate from the
// transactions of the last windowDays:
//
//	(sum of income - sum of expense) / max(windowDays/30, 1)
//
// Amounts are cents; the result is cents per month and can be negative.
// Callers wanting a non-negative contribution rate must clamp it
// themselves.
func AverageMonthlySavings(transactions []models.Transaction, windowDays int) float64 {
	var income, expense int64
	for _, t := range transactions {
		switch t.Kind {
		case models.KindIncome:
			income += t.Amount
		case models.KindExpense:
			expense += t.Amount
		}
	}

	months := float64(windowDays) / 30
	if months < 1 {
		months = 1
	}
	return float64(income-expense) / months
}

// CompoundGrowth simulates a principal plus a fixed monthly contribution
// compounding at annualRate for the given number of months.
//
// amounts[0] is the principal; each subsequent month applies one month
// of interest and then adds the contribution. Both slices have length
// months+1. Pure function: same inputs, same sequence, every time.
func CompoundGrowth(principal, monthlyContribution, annualRate float64, months int) (timePoints []int, amounts []float64) {
	monthlyRate := annualRate / 12

	timePoints = make([]int, 0, months+1)
	amounts = make([]float64, 0, months+1)

	current := principal
	timePoints = append(timePoints, 0)
	amounts = append(amounts, current)

	for m := 1; m <= months; m++ {
		current = current*(1+monthlyRate) + monthlyContribution
		timePoints = append(timePoints, m)
		amounts = append(amounts, current)
	}
	return timePoints, amounts
}
