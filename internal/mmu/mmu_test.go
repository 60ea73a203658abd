package mmu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/types"
)

func newTestMMU(opts ...Opt) *MMU {
	return NewMMU(cartridge.NewROMCartridge(nil), opts...)
}

func TestMMU_RoundTrip(t *testing.T) {
	m := newTestMMU()
	for _, r := range m.Regions() {
		if r.Name == "External RAM" {
			continue
		}
		t.Run(r.Name, func(t *testing.T) {
			for _, addr := range []uint16{r.Start, r.Start + uint16(r.Size()/2), r.End} {
				value := uint8(addr) ^ 0x5A
				require.NoError(t, m.Write(addr, value))
				v, err := m.Read(addr)
				require.NoError(t, err)
				assert.Equalf(t, value, v, "address 0x%04X", addr)
			}
		})
	}
}

func TestMMU_Unmapped(t *testing.T) {
	m := newTestMMU()
	tests := []struct {
		address uint16
		region  string
	}{
		{types.ExternalRAMStart, "External RAM"},
		{types.ExternalRAMEnd, "External RAM"},
		{types.EchoStart, "Echo RAM"},
		{types.EchoEnd, "Echo RAM"},
		{types.ProhibitedStart, "Prohibited"},
		{types.ProhibitedEnd, "Prohibited"},
	}
	for _, tt := range tests {
		_, err := m.Read(tt.address)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnmappedAddress))

		var unmapped *UnmappedAddressError
		require.True(t, errors.As(err, &unmapped))
		assert.Equal(t, tt.address, unmapped.Address)
		assert.Equal(t, tt.region, unmapped.Region)

		assert.ErrorIs(t, m.Write(tt.address, 0x01), ErrUnmappedAddress)
	}
}

func TestMMU_Boundaries(t *testing.T) {
	m := newTestMMU()
	// an address one past the end of a region belongs to the next
	// declared region, unless that range is reserved
	regions := m.Regions()
	for i := 0; i < len(regions)-1; i++ {
		next, ok := m.RegionOf(regions[i].End + 1)
		if !ok {
			continue
		}
		assert.Equal(t, regions[i+1].Name, next.Name, "after %s", regions[i].Name)
	}

	r, ok := m.RegionOf(types.WRAMEnd + 1)
	assert.False(t, ok, "echo RAM should not be mapped, got %s", r.Name)
	r, ok = m.RegionOf(types.OAMEnd + 1)
	assert.False(t, ok, "prohibited area should not be mapped, got %s", r.Name)
}

func TestMMU_Word(t *testing.T) {
	m := newTestMMU()

	require.NoError(t, m.WriteWord(0xC000, 0xBEEF))
	lo, _ := m.Read(0xC000)
	hi, _ := m.Read(0xC001)
	assert.Equal(t, uint8(0xEF), lo)
	assert.Equal(t, uint8(0xBE), hi)

	v, err := m.ReadWord(0xC000)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)

	// words may straddle regions
	require.NoError(t, m.WriteWord(types.HRAMEnd, 0x1234))
	v, err = m.ReadWord(types.HRAMEnd)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	// but not into unmapped space
	_, err = m.ReadWord(types.WRAMEnd)
	assert.ErrorIs(t, err, ErrUnmappedAddress)
}

func TestMMU_WRAMBanks(t *testing.T) {
	m := newTestMMU(Enhanced())
	assert.Equal(t, 8, m.WRAM.Banks())
	assert.Equal(t, uint32(2), m.VRAM.Banks())

	require.NoError(t, m.Write(0xD000, 0x11))
	m.WRAM.SetBank(2)
	v, _ := m.Read(0xD000)
	assert.Equal(t, uint8(0x00), v)
	require.NoError(t, m.Write(0xD000, 0x22))

	m.WRAM.SetBank(0) // selects bank 1
	assert.Equal(t, uint8(1), m.WRAM.Bank())
	v, _ = m.Read(0xD000)
	assert.Equal(t, uint8(0x11), v)

	// the fixed bank is unaffected
	require.NoError(t, m.Write(0xC000, 0x33))
	m.WRAM.SetBank(5)
	v, _ = m.Read(0xC000)
	assert.Equal(t, uint8(0x33), v)
}

func TestMMU_BankSelect(t *testing.T) {
	t.Run("enhanced", func(t *testing.T) {
		m := newTestMMU(Enhanced(), WithBankSelect())
		require.NoError(t, m.Write(types.SVBK, 3))
		assert.Equal(t, uint8(3), m.WRAM.Bank())
		require.NoError(t, m.Write(types.VBK, 0xFF))
		assert.Equal(t, uint8(1), m.VRAM.Bank())
	})
	t.Run("base", func(t *testing.T) {
		m := newTestMMU(WithBankSelect())
		require.NoError(t, m.Write(types.SVBK, 3))
		assert.Equal(t, uint8(1), m.WRAM.Bank())
		assert.False(t, m.IO.Observed(types.SVBK))
	})
	t.Run("not requested", func(t *testing.T) {
		m := newTestMMU(Enhanced())
		require.NoError(t, m.Write(types.SVBK, 3))
		assert.Equal(t, uint8(1), m.WRAM.Bank())
	})
}

func TestMMU_Validate(t *testing.T) {
	m := newTestMMU()
	require.NoError(t, m.Validate())

	// introduce a gap and an overlap
	m.regions[1].End = types.VRAMEnd - 0x10
	m.regions = append(m.regions, Region{Name: "Overlap", Start: 0xC000, End: 0xC0FF})
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x9FF0-0x9FFF are not covered")
	assert.Contains(t, err.Error(), "overlaps Overlap")
}

func TestMMU_State(t *testing.T) {
	m := newTestMMU(Enhanced())
	require.NoError(t, m.Write(0x0150, 0xAA))
	require.NoError(t, m.Write(0x8000, 0xBB))
	require.NoError(t, m.Write(0xD000, 0xCC))
	require.NoError(t, m.Write(0xFE00, 0xDD))
	require.NoError(t, m.Write(0xFF44, 0xEE))
	require.NoError(t, m.Write(0xFF80, 0xFF))
	require.NoError(t, m.Write(0xFFFF, 0x1F))

	s := types.NewState()
	m.Save(s)

	loaded := newTestMMU(Enhanced())
	st := types.StateFromBytes(s.Bytes())
	loaded.Load(st)
	require.NoError(t, st.Err())

	for addr, want := range map[uint16]uint8{0x0150: 0xAA, 0x8000: 0xBB, 0xD000: 0xCC, 0xFE00: 0xDD, 0xFF44: 0xEE, 0xFF80: 0xFF, 0xFFFF: 0x1F} {
		v, err := loaded.Read(addr)
		require.NoError(t, err)
		assert.Equalf(t, want, v, "address 0x%04X", addr)
	}
}
