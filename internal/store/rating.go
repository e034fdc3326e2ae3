package store

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rating aggregates are recomputed from the full review set on every read.
// Review sets per store are small, so there is no cached counter to go
// stale.

// AverageRating returns the arithmetic mean rounded to one decimal place,
// or 0 when there are no reviews.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).InexactFloat64()
}

// ReviewerCount renders as the literal count up to 3 and as the capped
// label "3+" beyond that. The label is display-only; it must never be read
// back as a number.
type ReviewerCount int

func (c ReviewerCount) MarshalJSON() ([]byte, error) {
	if c > 3 {
		return json.Marshal("3+")
	}
	return json.Marshal(int(c))
}

func (c ReviewerCount) String() string {
	if c > 3 {
		return "3+"
	}
	return fmt.Sprintf("%d", int(c))
}

// GoodReviewPercentage returns the share of reviews rated above 3, rounded
// to the nearest whole percent and formatted with a trailing '%'. An empty
// review set yields "0%".
func GoodReviewPercentage(ratings []int) string {
	if len(ratings) == 0 {
		return "0%"
	}
	good := 0
	for _, r := range ratings {
		if r > 3 {
			good++
		}
	}
	pct := decimal.NewFromInt(int64(good * 100)).
		Div(decimal.NewFromInt(int64(len(ratings)))).
		Round(0).IntPart()
	return fmt.Sprintf("%d%%", pct)
}
