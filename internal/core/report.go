package core

import (
	"math"
	"time"
)

// CategoryTotal is an expense sum for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Report is the monthly summary derived from a user's transaction list
// and settings. CurrentSavings is signed and may go negative.
type Report struct {
	TotalIncome     float64         `json:"totalIncome"`
	TotalExpense    float64         `json:"totalExpense"`
	CurrentSavings  float64         `json:"currentSavings"`
	PercentOfTarget int             `json:"percentOfTarget"`
	CategoryTotals  []CategoryTotal `json:"categoryTotals"`
	DailyTotals     []float64       `json:"dailyTotals"`
	DaysInMonth     int             `json:"daysInMonth"`
	RemainingDays   int             `json:"remainingDays"`
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// BuildReport aggregates a user's transactions into a view-ready summary.
// Income, expense and category totals cover the whole list; daily totals
// cover only expenses dated in now's calendar month, index i holding the
// sum for day i+1. Pure function, no side effects.
func BuildReport(txns []Transaction, settings Settings, now time.Time) Report {
	days := DaysInMonth(now)
	r := Report{
		CategoryTotals: []CategoryTotal{},
		DailyTotals:    make([]float64, days),
		DaysInMonth:    days,
		RemainingDays:  days - now.Day() + 1,
	}

	catIndex := make(map[string]int)
	for _, t := range txns {
		switch t.Type {
		case Income:
			r.TotalIncome += t.Amount
		case Expense:
			r.TotalExpense += t.Amount

			// category buckets keep first-occurrence order
			i, ok := catIndex[t.Category]
			if !ok {
				i = len(r.CategoryTotals)
				catIndex[t.Category] = i
				r.CategoryTotals = append(r.CategoryTotals, CategoryTotal{Category: t.Category})
			}
			r.CategoryTotals[i].Total += t.Amount

			if t.Date.Year() == now.Year() && t.Date.Month() == now.Month() {
				r.DailyTotals[t.Date.Day()-1] += t.Amount
			}
		}
	}

	r.CurrentSavings = r.TotalIncome - r.TotalExpense
	r.PercentOfTarget = percentOfTarget(r.CurrentSavings, settings.MonthlyTarget)
	return r
}

// percentOfTarget is 0 when the target is unset and clamps to [0, 100]
// otherwise; savings beyond the target still read as 100.
func percentOfTarget(savings, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(savings / target * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
