package insurance

import "math"

// oddsByOuts is the house payout table for the insurance side bet.
// Fewer outs means a longer shot for the insured hand and a larger
// multiplier. Outs not listed here pay the default multiplier.
var oddsByOuts = map[int]float64{
	1:  30,
	2:  16,
	3:  10,
	4:  8,
	5:  6,
	6:  5,
	7:  4.5,
	8:  4,
	9:  3.5,
	10: 3,
	11: 2.6,
	12: 2.3,
	13: 2,
	14: 1.8,
	15: 1.6,
	16: 1.4,
}

const DefaultOdds = 1.2

func Odds(outs int) float64 {
	if o, ok := oddsByOuts[outs]; ok {
		return o
	}
	return DefaultOdds
}

// Payout is what the house owes on a losing insurance bet, rounded to
// the nearest whole unit.
func Payout(bet int64, outs int) int64 {
	return int64(math.Round(float64(bet) * Odds(outs)))
}
