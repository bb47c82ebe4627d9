package tile

import "fmt"

func errSizeMismatch(got, want int) error {
	return fmt.Errorf("tile: assignment has %d bits, schema expects %d", got, want)
}
