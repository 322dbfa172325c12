package chips

import "errors"

type Color string

const (
	White  Color = "white"
	Red    Color = "red"
	Black  Color = "black"
	Purple Color = "purple"
	Yellow Color = "yellow"
)

// Colors lists every chip color in display order.
var Colors = []Color{White, Red, Black, Purple, Yellow}

var ErrNonPositiveDenomination = errors.New("non_positive_denomination")

// Denominations maps a chip color to its monetary value.
type Denominations map[Color]int64

func Default() Denominations {
	return Denominations{
		White:  5,
		Red:    25,
		Black:  100,
		Purple: 500,
		Yellow: 1000,
	}
}

func (d Denominations) Validate() error {
	for _, c := range Colors {
		if d[c] <= 0 {
			return ErrNonPositiveDenomination
		}
	}
	return nil
}

// StackValue sums count x denomination over all colors. Colors missing
// from counts contribute nothing.
func StackValue(counts map[Color]int, denoms Denominations) int64 {
	var total int64
	for c, n := range counts {
		total += int64(n) * denoms[c]
	}
	return total
}
