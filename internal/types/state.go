package types

import (
	"errors"
	"fmt"
)

var (
	// ErrStateTruncated is returned when a State is read past the
	// end of its data.
	ErrStateTruncated = errors.New("state truncated")
	// ErrStateCorrupt is returned when a State contains a block
	// that does not match the layout being loaded.
	ErrStateCorrupt = errors.New("state corrupt")
)

// Resettable is an interface that allows an object to be reset.
type Resettable interface {
	Reset() // Reset the state of the object
}

// State represents the Game Boy state. This is used to
// save and load states between runs, and to digest the
// machine for comparisons.
//
// Reads never panic: reading past the end records
// ErrStateTruncated, which is reported by Err, and returns
// zero values from then on.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x4000),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Remaining returns the number of unread bytes.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

// Corrupt records ErrStateCorrupt for a value that does not fit the
// layout being loaded, unless reading has already failed.
func (s *State) Corrupt(format string, args ...interface{}) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: %s", ErrStateCorrupt, fmt.Sprintf(format, args...))
	}
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

// WriteData writes the length of data followed by the data itself.
func (s *State) WriteData(data []byte) {
	s.Write32(uint32(len(data)))
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes, or nil once the state is exhausted.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.readPosition+n > len(s.raw) {
		s.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrStateTruncated, n, s.readPosition, len(s.raw)-s.readPosition)
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read32() uint32 {
	b := s.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	return uint64(lo) | uint64(s.Read32())<<32
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData reads a length-prefixed block into p. The stored length
// must match len(p).
func (s *State) ReadData(p []byte) {
	n := s.Read32()
	if s.err != nil {
		return
	}
	if int(n) != len(p) {
		s.err = fmt.Errorf("%w: block of %d bytes, expected %d", ErrStateCorrupt, n, len(p))
		return
	}
	copy(p, s.take(len(p)))
}

func (s *State) Bytes() []byte {
	return s.raw
}
