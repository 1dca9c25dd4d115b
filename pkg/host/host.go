package host

import (
	"os"
	"strconv"
)

// Platform identifies an architecture and word width in the terms used by
// relevancy rules.
type Platform struct {
	Arch string
	Bits string
}

func (p Platform) String() string {
	return p.Arch + ":" + p.Bits
}

// Detect returns the running platform. SCREL_ARCH and SCREL_BITS override
// the detected values.
func Detect() (Platform, error) {
	arch, err := machine()
	if err != nil {
		return Platform{}, err
	}
	p := Platform{Arch: arch, Bits: strconv.Itoa(strconv.IntSize)}
	return withOverrides(p, os.Getenv("SCREL_ARCH"), os.Getenv("SCREL_BITS")), nil
}

func withOverrides(p Platform, arch, bits string) Platform {
	if arch != "" {
		p.Arch = arch
	}
	if bits != "" {
		p.Bits = bits
	}
	return p
}
