package web

import (
	"encoding/hex"
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/debugger"
)

// Command is the name of a request sent by a client.
type Command = string

const (
	// Step executes Count instructions (at least one), at most the
	// server's step limit.
	Step Command = "step"
	// Continue runs until a breakpoint, bounded by Count if non-zero
	// and always by the server's step limit.
	Continue Command = "continue"
	// Break adds a breakpoint at Addr.
	Break Command = "break"
	// Clear removes the breakpoint at Addr, or every breakpoint if
	// Addr is omitted.
	Clear Command = "clear"
	// Regs returns the registers.
	Regs Command = "regs"
	// Peek returns Count bytes of memory from Addr.
	Peek Command = "peek"
	// Digest returns the state digest.
	Digest Command = "digest"
	// Resume wakes a halted CPU.
	Resume Command = "resume"

	// Stopped is broadcast to the other clients whenever a client
	// steps or continues the machine.
	Stopped Command = "stopped"
)

// Request is a command sent by a client.
type Request struct {
	Cmd   Command `json:"cmd"`
	Addr  *uint16 `json:"addr,omitempty"`
	Count int     `json:"count,omitempty"`
}

// StopInfo reports the outcome of a step or continue.
type StopInfo struct {
	Reason string `json:"reason"`
	PC     uint16 `json:"pc"`
	Steps  int    `json:"steps"`
}

// Response answers a Request, or announces a stop with Cmd Stopped.
type Response struct {
	Cmd         Command                `json:"cmd"`
	Registers   *debugger.RegisterDump `json:"registers,omitempty"`
	Stop        *StopInfo              `json:"stop,omitempty"`
	Breakpoints []uint16               `json:"breakpoints,omitempty"`
	// Data is the memory read by Peek, hex encoded.
	Data   string `json:"data,omitempty"`
	Digest string `json:"digest,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handle executes req against d. No step or continue runs more than
// limit instructions, unless limit is 0.
func handle(d *debugger.Debugger, req Request, limit int) Response {
	resp := Response{Cmd: req.Cmd}
	switch req.Cmd {
	case Step, Continue:
		n := req.Count
		if limit > 0 && (n > limit || (n <= 0 && req.Cmd == Continue)) {
			n = limit
		}
		var stop debugger.Stop
		if req.Cmd == Step {
			stop = d.Step(n)
		} else {
			stop = d.Continue(n)
		}
		resp.Stop = &StopInfo{Reason: stop.Reason.String(), PC: stop.PC, Steps: stop.Steps}
		if stop.Err != nil {
			resp.Error = stop.Err.Error()
		}
		regs := d.Registers()
		resp.Registers = &regs
	case Break:
		if req.Addr == nil {
			resp.Error = "break requires addr"
			break
		}
		d.Breakpoints.Add(*req.Addr)
		resp.Breakpoints = d.Breakpoints.List()
	case Clear:
		if req.Addr == nil {
			d.Breakpoints.Clear()
		} else {
			d.Breakpoints.Remove(*req.Addr)
		}
		resp.Breakpoints = d.Breakpoints.List()
	case Regs:
		regs := d.Registers()
		resp.Registers = &regs
	case Peek:
		if req.Addr == nil {
			resp.Error = "peek requires addr"
			break
		}
		data, err := d.Peek(*req.Addr, req.Count)
		resp.Data = hex.EncodeToString(data)
		if err != nil {
			resp.Error = err.Error()
		}
	case Digest:
		resp.Digest = fmt.Sprintf("%016x", d.Digest())
	case Resume:
		d.Resume()
		regs := d.Registers()
		resp.Registers = &regs
	default:
		resp.Error = fmt.Sprintf("unknown command %q", req.Cmd)
	}
	return resp
}
