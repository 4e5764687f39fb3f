package frame

import "fmt"

func errInvalidChannelCount(n int) error {
	return fmt.Errorf("frame: channel count %d out of range [1,8]", n)
}
