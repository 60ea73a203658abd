package gameboy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/internal/video"
)

// testROM returns a plain ROM cartridge image with program at the
// entry point.
func testROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[types.EntryPoint:], program)
	return rom
}

// counter increments B forever:
//
//	0x0100 INC B
//	0x0101 JP 0x0100
var counter = []uint8{0x04, 0xC3, 0x00, 0x01}

func TestNewGameBoy(t *testing.T) {
	gb, err := NewGameBoy(testROM())
	require.NoError(t, err)
	assert.Equal(t, types.EntryPoint, gb.CPU.PC)
	assert.False(t, gb.MMU.IsGBC())
	assert.Equal(t, 2, gb.MMU.WRAM.Banks())

	gb, err = NewGameBoy(testROM(), Enhanced(), WithEntryPoint(0x0150))
	require.NoError(t, err)
	assert.True(t, gb.MMU.IsGBC())
	assert.Equal(t, 8, gb.MMU.WRAM.Banks())
	assert.Equal(t, uint16(0x0150), gb.CPU.PC)
}

func TestNewGameBoy_Header(t *testing.T) {
	rom := testROM()
	copy(rom[0x0134:], "GBCORE")
	gb, err := NewGameBoy(rom)
	require.NoError(t, err)
	assert.Equal(t, "GBCORE", gb.Header.Title)
	assert.Equal(t, cartridge.ROM, gb.Header.CartridgeType)

	gb, err = NewGameBoy([]byte{0x00})
	require.NoError(t, err)
	assert.Empty(t, gb.Header.Title)
}

func TestNewGameBoy_UnsupportedController(t *testing.T) {
	rom := testROM()
	rom[0x0147] = 0x01 // MBC1
	_, err := NewGameBoy(rom)
	assert.True(t, errors.Is(err, cartridge.ErrUnsupportedController), "got %v", err)
}

func TestGameBoy_Step(t *testing.T) {
	gb, err := NewGameBoy(testROM(counter...))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, gb.Step())
	}
	assert.Equal(t, uint8(5), gb.CPU.B)
	assert.Equal(t, uint64(10), gb.CPU.Instructions)
	assert.Equal(t, uint64(10), gb.Video.Cycle())
}

func TestGameBoy_StepError(t *testing.T) {
	gb, err := NewGameBoy(testROM(0xD3))
	require.NoError(t, err)

	err = gb.Step()
	var unsupported *cpu.UnsupportedInstructionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uint8(0xD3), unsupported.Opcode)
	assert.Equal(t, uint64(0), gb.Video.Cycle())
}

func TestGameBoy_RunUntil(t *testing.T) {
	gb, err := NewGameBoy(testROM(counter...))
	require.NoError(t, err)

	n, err := gb.RunUntil(func(gb *GameBoy) bool { return gb.CPU.B == 100 }, 0)
	require.NoError(t, err)
	assert.Equal(t, 199, n)
	assert.Equal(t, uint16(0x0101), gb.CPU.PC)

	n, err = gb.RunUntil(nil, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	// LY advances through the MMU as the machine runs
	n, err = gb.RunUntil(func(gb *GameBoy) bool {
		ly, _ := gb.MMU.Read(types.LY)
		return ly == 2
	}, 10000)
	require.NoError(t, err)
	assert.Equal(t, uint64(video.TicksPerLine*2), gb.Video.Cycle())
	assert.Equal(t, video.TicksPerLine*2-249, n)
}

func TestGameBoy_RunUntilError(t *testing.T) {
	// XOR A; JR Z, +0 (lands on the unused opcode 0xFD)
	gb, err := NewGameBoy(testROM(0xAF, 0x28, 0x80, 0xFD))
	require.NoError(t, err)

	n, err := gb.RunUntil(nil, 100)
	assert.ErrorIs(t, err, cpu.ErrUnsupportedInstruction)
	assert.Equal(t, 2, n)
}

func TestGameBoy_Halt(t *testing.T) {
	gb, err := NewGameBoy(testROM(0x76))
	require.NoError(t, err)

	n, err := gb.RunUntil(nil, 10)
	assert.ErrorIs(t, err, cpu.ErrHalted)
	assert.Equal(t, 1, n)
}

func TestGameBoy_SaveLoad(t *testing.T) {
	gb, err := NewGameBoy(testROM(counter...))
	require.NoError(t, err)
	_, err = gb.RunUntil(nil, 1234)
	require.NoError(t, err)
	require.NoError(t, gb.MMU.Write(0xC000, 0x42))

	snapshot := gb.Save()

	restored, err := NewGameBoy(testROM(counter...), WithState(snapshot))
	require.NoError(t, err)
	assert.Equal(t, gb.CPU.Registers, restored.CPU.Registers)
	assert.Equal(t, gb.Digest(), restored.Digest())

	v, err := restored.MMU.Read(0xC000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)

	// both machines continue identically
	require.NoError(t, gb.Step())
	require.NoError(t, restored.Step())
	assert.Equal(t, gb.Digest(), restored.Digest())
}

func TestGameBoy_LoadErrors(t *testing.T) {
	gb, err := NewGameBoy(testROM())
	require.NoError(t, err)
	snapshot := gb.Save()

	assert.ErrorIs(t, gb.Load([]byte("garbage")), ErrBadState)
	assert.ErrorIs(t, gb.Load(snapshot[:len(snapshot)/2]), types.ErrStateTruncated)
	assert.ErrorIs(t, gb.Load(append(snapshot, 0x00)), types.ErrStateCorrupt)

	enhanced, err := NewGameBoy(testROM(), Enhanced())
	require.NoError(t, err)
	assert.ErrorIs(t, enhanced.Load(snapshot), ErrBadState)
}

func TestGameBoy_LoadFailureKeepsMachine(t *testing.T) {
	gb, err := NewGameBoy(testROM(counter...))
	require.NoError(t, err)
	snapshot := gb.Save()

	_, err = gb.RunUntil(nil, 5)
	require.NoError(t, err)
	require.NoError(t, gb.MMU.Write(0xC000, 0x42))
	registers := gb.CPU.Registers
	digest := gb.Digest()
	require.Equal(t, uint8(3), registers.B)

	check := func(t *testing.T) {
		t.Helper()
		assert.Equal(t, registers, gb.CPU.Registers)
		v, err := gb.MMU.Read(0xC000)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x42), v)
		assert.Equal(t, digest, gb.Digest())
	}

	t.Run("truncated", func(t *testing.T) {
		err := gb.Load(snapshot[:len(snapshot)-10])
		require.ErrorIs(t, err, types.ErrStateTruncated)
		assert.NotContains(t, err.Error(), "trailing")
		check(t)
	})
	t.Run("bad cpu mode", func(t *testing.T) {
		corrupt := append([]byte(nil), snapshot...)
		// magic, version, enhanced, 8 registers, SP, PC, IME
		corrupt[4+1+1+8+2+2+1] = 0x7F
		require.ErrorIs(t, gb.Load(corrupt), types.ErrStateCorrupt)
		check(t)
	})
	t.Run("compressed", func(t *testing.T) {
		assert.Error(t, gb.LoadCompressed([]byte{0xFF, 0xFF, 0xFF}))
		check(t)
	})

	// a good snapshot still loads afterwards
	require.NoError(t, gb.Load(snapshot))
	assert.Equal(t, uint8(0), gb.CPU.B)
	assert.Equal(t, types.EntryPoint, gb.CPU.PC)
}

func TestGameBoy_Compressed(t *testing.T) {
	gb, err := NewGameBoy(testROM(counter...))
	require.NoError(t, err)
	_, err = gb.RunUntil(nil, 100)
	require.NoError(t, err)

	compressed, err := gb.SaveCompressed()
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(gb.Save()))

	restored, err := NewGameBoy(testROM(counter...))
	require.NoError(t, err)
	require.NoError(t, restored.LoadCompressed(compressed))
	assert.Equal(t, gb.Digest(), restored.Digest())

	assert.Error(t, restored.LoadCompressed([]byte{0xFF, 0xFF, 0xFF}))
}

func TestGameBoy_BankSelect(t *testing.T) {
	gb, err := NewGameBoy(testROM(), Enhanced(), WithBankSelect())
	require.NoError(t, err)

	require.NoError(t, gb.MMU.Write(types.SVBK, 3))
	assert.Equal(t, uint8(3), gb.MMU.WRAM.Bank())
}
