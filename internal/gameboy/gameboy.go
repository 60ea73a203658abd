// Package gameboy ties the CPU, the MMU and the video timing stub
// together into a machine that is advanced one instruction at a time.
package gameboy

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/internal/video"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// stateMagic opens every snapshot, "GBCS" in little endian.
	stateMagic   uint32 = 0x53434247
	stateVersion uint8  = 1
)

// ErrBadState is returned when a snapshot was not produced by Save.
var ErrBadState = errors.New("not a gameboy snapshot")

// GameBoy represents a Game Boy. It contains all the components of
// the Game Boy that the core emulates.
type GameBoy struct {
	CPU   *cpu.CPU
	MMU   *mmu.MMU
	Video *video.Timing

	// Header is the parsed cartridge header, zero for ROMs too short
	// to carry one.
	Header cartridge.Header

	Logger log.Logger

	enhanced   bool
	bankSelect bool
	entryPoint uint16
	state      []byte
}

// NewGameBoy returns a new GameBoy running the given ROM. The ROM
// must use a supported cartridge controller.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:     log.NewNullLogger(),
		entryPoint: types.EntryPoint,
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	g.Logger.Debugf("gameboy: using %s cartridge controller", cart.Type())
	if g.Header, err = cartridge.ParseHeader(rom); err != nil {
		g.Logger.Debugf("gameboy: %v", err)
	} else if !g.Header.ValidChecksum() {
		g.Logger.Debugf("gameboy: header checksum mismatch for %q", g.Header.Title)
	}

	mmuOpts := []mmu.Opt{mmu.WithLogger(g.Logger)}
	if g.enhanced {
		mmuOpts = append(mmuOpts, mmu.Enhanced())
	}
	if g.bankSelect {
		mmuOpts = append(mmuOpts, mmu.WithBankSelect())
	}
	g.MMU = mmu.NewMMU(cart, mmuOpts...)
	if err := g.MMU.Validate(); err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	g.CPU = cpu.NewCPU(g.MMU)
	g.CPU.PC = g.entryPoint
	g.Video = video.NewTiming(g.MMU)

	if g.state != nil {
		if err := g.Load(g.state); err != nil {
			return nil, err
		}
	}
	g.Logger.Debugf("gameboy: created (enhanced=%v, PC=0x%04X)", g.enhanced, g.CPU.PC)

	return g, nil
}

// Step executes a single instruction, then advances the video timing.
// Errors from the CPU are returned unwrapped.
func (g *GameBoy) Step() error {
	if err := g.CPU.Step(); err != nil {
		return err
	}
	if err := g.Video.Tick(); err != nil {
		return fmt.Errorf("video: %w", err)
	}
	return nil
}

// RunUntil steps the GameBoy until stop returns true after a step,
// a step fails, or limit steps have been executed. A limit of 0 or
// less runs until stop or an error. It returns the number of
// successful steps.
func (g *GameBoy) RunUntil(stop func(*GameBoy) bool, limit int) (int, error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		if err := g.Step(); err != nil {
			return n, err
		}
		if stop != nil && stop(g) {
			return n + 1, nil
		}
	}
	return limit, nil
}

// Save returns a snapshot of the whole machine.
func (g *GameBoy) Save() []byte {
	s := types.NewState()
	s.Write32(stateMagic)
	s.Write8(stateVersion)
	s.WriteBool(g.enhanced)
	g.save(s)
	return s.Bytes()
}

func (g *GameBoy) save(s *types.State) {
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.Video.Save(s)
}

func (g *GameBoy) load(s *types.State) {
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.Video.Load(s)
}

// Load restores a snapshot taken by Save. The snapshot must have been
// taken from a GameBoy in the same mode. If the snapshot cannot be
// loaded the machine is left as it was.
func (g *GameBoy) Load(b []byte) error {
	s := types.StateFromBytes(b)
	if s.Read32() != stateMagic {
		return fmt.Errorf("gameboy: %w", ErrBadState)
	}
	if v := s.Read8(); v != stateVersion {
		return fmt.Errorf("gameboy: %w: version %d", ErrBadState, v)
	}
	if s.ReadBool() != g.enhanced {
		return fmt.Errorf("gameboy: %w: snapshot mode does not match", ErrBadState)
	}

	previous := types.NewState()
	g.save(previous)
	g.load(s)

	err := s.Err()
	if n := s.Remaining(); err == nil && n > 0 {
		err = fmt.Errorf("%w: %d trailing bytes", types.ErrStateCorrupt, n)
	}
	if err != nil {
		g.load(types.StateFromBytes(previous.Bytes()))
		return fmt.Errorf("gameboy: loading state: %w", err)
	}
	return nil
}

// SaveCompressed returns a brotli compressed snapshot.
func (g *GameBoy) SaveCompressed() ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(g.Save()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadCompressed restores a snapshot taken by SaveCompressed.
func (g *GameBoy) LoadCompressed(b []byte) error {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
	if err != nil {
		return fmt.Errorf("gameboy: decompressing state: %w", err)
	}
	return g.Load(raw)
}

// Digest returns a 64-bit hash of the machine state. Two machines
// with equal digests are in the same state.
func (g *GameBoy) Digest() uint64 {
	return xxhash.Sum64(g.Save())
}
