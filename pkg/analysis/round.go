package analysis

import "strconv"

// Round rounds x to the given number of decimal places, resolving ties on
// the exact binary value to the even neighbour.
func Round(x float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}
