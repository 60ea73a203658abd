package mmu

import (
	"errors"
	"fmt"
)

// ErrUnmappedAddress is the sentinel matched by every
// UnmappedAddressError.
var ErrUnmappedAddress = errors.New("unmapped address")

// UnmappedAddressError is returned when an address is not backed
// by any region.
type UnmappedAddressError struct {
	Address uint16
	// Region names the reserved range the address falls in, if any.
	Region string
}

func (e *UnmappedAddressError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("unmapped address 0x%04X (%s)", e.Address, e.Region)
	}
	return fmt.Sprintf("unmapped address 0x%04X", e.Address)
}

func (e *UnmappedAddressError) Is(target error) bool {
	return target == ErrUnmappedAddress
}
