package host

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func machine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname failed: %w", err)
	}
	return unix.ByteSliceToString(uts.Machine[:]), nil
}
