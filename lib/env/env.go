package env

import (
	"os"
)

// Test reports whether TEST_MODE is set. Test mode swaps the font ruler for
// the fixed-advance one so layouts do not depend on font rasterization.
func Test() bool {
	return os.Getenv("TEST_MODE") != ""
}

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}
