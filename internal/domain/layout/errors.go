package layout

import "errors"

var (
	// ErrUnsupportedArchitecture is returned for architectures without a layout table.
	ErrUnsupportedArchitecture = errors.New("unsupported architecture")
	// ErrUnsupportedTarget is returned for build targets outside the supported set.
	ErrUnsupportedTarget = errors.New("unsupported target")
)
