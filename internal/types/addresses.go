package types

// The logical address space of the Game Boy is split into a number
// of regions, each backed by its own store. The constants below mark
// the inclusive bounds of each region.
const (
	// ROMStart is the first address of the cartridge ROM (32kB).
	ROMStart uint16 = 0x0000
	// ROMEnd is the last address of the cartridge ROM.
	ROMEnd uint16 = 0x7FFF
	// VRAMStart is the first address of the video RAM (8kB).
	VRAMStart uint16 = 0x8000
	// VRAMEnd is the last address of the video RAM.
	VRAMEnd uint16 = 0x9FFF
	// ExternalRAMStart is the first address of the cartridge's
	// external RAM (8kB). Only some cartridges provide it.
	ExternalRAMStart uint16 = 0xA000
	// ExternalRAMEnd is the last address of the external RAM.
	ExternalRAMEnd uint16 = 0xBFFF
	// WRAMStart is the first address of the working RAM (8kB).
	WRAMStart uint16 = 0xC000
	// WRAMBankedStart is the first address of the switchable
	// working RAM bank. In CGB mode banks 1-7 may be mapped here.
	WRAMBankedStart uint16 = 0xD000
	// WRAMEnd is the last address of the working RAM.
	WRAMEnd uint16 = 0xDFFF
	// EchoStart is the first address of the echo RAM, a mirror
	// of 0xC000 - 0xDDFF that is not backed by this core.
	EchoStart uint16 = 0xE000
	// EchoEnd is the last address of the echo RAM.
	EchoEnd uint16 = 0xFDFF
	// OAMStart is the first address of the object attribute
	// memory (160B).
	OAMStart uint16 = 0xFE00
	// OAMEnd is the last address of the object attribute memory.
	OAMEnd uint16 = 0xFE9F
	// ProhibitedStart is the first address of the unusable area
	// between OAM and the I/O registers.
	ProhibitedStart uint16 = 0xFEA0
	// ProhibitedEnd is the last address of the unusable area.
	ProhibitedEnd uint16 = 0xFEFF
	// IOStart is the first address of the I/O register block (128B).
	IOStart uint16 = 0xFF00
	// IOEnd is the last address of the I/O register block.
	IOEnd uint16 = 0xFF7F
	// HRAMStart is the first address of the high RAM (127B).
	HRAMStart uint16 = 0xFF80
	// HRAMEnd is the last address of the high RAM.
	HRAMEnd uint16 = 0xFFFE
)

// EntryPoint is the address the CPU starts executing from once
// the boot ROM has handed over control to the cartridge.
const EntryPoint uint16 = 0x0100

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register is used to transfer data between the
	// CPU and the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register.
	DIV HardwareAddress = 0xFF04
	// IF is the address of the IF hardware register. Interrupt
	// dispatch is not modelled, so the register is plain storage.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register.
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register.
	STAT HardwareAddress = 0xFF41
	// LY is the address of the LY hardware register. The LY
	// hardware register indicates the vertical line to which
	// the present data is transferred to the LCD driver. It
	// takes any value between 0 and 153.
	LY HardwareAddress = 0xFF44
	// VBK is the address of the VBK hardware register. The VBK
	// hardware register is used to select the current video
	// memory bank. Bit 0 selects bank 0 or 1, the other bits
	// are ignored. VBK is only used in CGB mode.
	VBK HardwareAddress = 0xFF4F
	// SVBK is the address of the SVBK hardware register. The SVBK
	// hardware register selects the working RAM bank mapped to
	// 0xD000 - 0xDFFF. Writing 0 selects bank 1. SVBK is only used
	// in CGB mode.
	SVBK HardwareAddress = 0xFF70
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts.
	IE HardwareAddress = 0xFFFF
)
