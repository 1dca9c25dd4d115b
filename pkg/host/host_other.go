//go:build !linux

package host

import "runtime"

// uname machine names for the GOARCH values we know about
var machines = map[string]string{
	"amd64":   "x86_64",
	"386":     "i686",
	"arm64":   "aarch64",
	"ppc64":   "ppc64",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
}

func machine() (string, error) {
	if m, ok := machines[runtime.GOARCH]; ok {
		return m, nil
	}
	return runtime.GOARCH, nil
}
