package mmu

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks that every address of the 16-bit address space is
// covered by exactly one region or reserved range. Every violation
// found is reported.
func (m *MMU) Validate() error {
	var result *multierror.Error

	all := append(m.Regions(), m.reserved...)
	for i, r := range all {
		if r.End < r.Start {
			result = multierror.Append(result, fmt.Errorf("region %s ends (0x%04X) before it starts (0x%04X)", r.Name, r.End, r.Start))
		}
		for _, o := range all[i+1:] {
			if r.Start <= o.End && o.Start <= r.End {
				result = multierror.Append(result, fmt.Errorf("region %s (0x%04X-0x%04X) overlaps %s (0x%04X-0x%04X)", r.Name, r.Start, r.End, o.Name, o.Start, o.End))
			}
		}
	}

	gapStart := -1
	for addr := 0; addr <= 0x10000; addr++ {
		covered := false
		if addr <= 0xFFFF {
			for _, r := range all {
				if r.Contains(uint16(addr)) {
					covered = true
					break
				}
			}
		}
		switch {
		case !covered && addr <= 0xFFFF && gapStart < 0:
			gapStart = addr
		case (covered || addr > 0xFFFF) && gapStart >= 0:
			result = multierror.Append(result, fmt.Errorf("addresses 0x%04X-0x%04X are not covered by any region", gapStart, addr-1))
			gapStart = -1
		}
	}

	return result.ErrorOrNil()
}
