//go:build !linux

package trash

import "errors"

var errImmutableUnsupported = errors.New("immutability attribute not supported on this platform")

func isImmutable(string) (bool, error) {
	return false, errImmutableUnsupported
}
