// Package bytecode reads and patches the major version of a class file.
package bytecode

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// VersionIndex is the offset of the major version in a class file.
	VersionIndex = 6

	// MaxVersion is the highest major version the analyzer understands.
	MaxVersion = 56
)

// ErrTruncated is returned when a buffer is too short to hold a version field.
var ErrTruncated = errors.New("class file truncated before major version")

// Check verifies that b holds a major version field.
func Check(b []byte) error {
	if len(b) < VersionIndex+2 {
		return fmt.Errorf("%w: %d bytes", ErrTruncated, len(b))
	}
	return nil
}

// Get returns the major version of class file b as a signed 16-bit value.
func Get(b []byte) int {
	return int(int16(binary.BigEndian.Uint16(b[VersionIndex:])))
}

// Set writes version as the major version of class file b.
func Set(b []byte, version int) {
	binary.BigEndian.PutUint16(b[VersionIndex:], uint16(version))
}

// DowngradeIfNeeded returns source itself when version is at most MaxVersion, otherwise a
// copy of source with the major version set to MaxVersion.
func DowngradeIfNeeded(version int, source []byte) []byte {
	// Only the low byte counts: 1.1 class files carry the minor version in the high bits.
	if version&0xff <= MaxVersion {
		return source
	}
	b := make([]byte, len(source))
	copy(b, source)
	Set(b, MaxVersion)
	return b
}
