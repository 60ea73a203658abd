package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thelolagemann/gbcore/pkg/debugger"
	"golang.org/x/term"
)

const help = `commands:
  s, step [n]      execute n instructions (default 1)
  c, continue      run until a breakpoint
  b <addr>         set a breakpoint
  d <addr>         delete a breakpoint
  l                list breakpoints
  r                show registers
  x <addr> [n]     dump n bytes of memory (default 16)
  m                show the memory map
  digest           show the state digest
  resume           wake a halted CPU
  save <file>      write a snapshot to file
  load <file>      restore a snapshot from file
  q                quit`

// errQuit ends the session.
var errQuit = errors.New("quit")

// repl is the interactive terminal debugger.
type repl struct {
	d        *debugger.Debugger
	in       *bufio.Scanner
	out      io.Writer
	prompt   bool
	maxSteps int
}

func newREPL(d *debugger.Debugger, in io.Reader, out io.Writer, maxSteps int) *repl {
	r := &repl{
		d:        d,
		in:       bufio.NewScanner(in),
		out:      out,
		maxSteps: maxSteps,
	}
	// only prompt when a person is typing
	if f, ok := in.(*os.File); ok {
		r.prompt = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// run reads commands until q or the end of input.
func (r *repl) run() error {
	for {
		if r.prompt {
			fmt.Fprint(r.out, "> ")
		}
		if !r.in.Scan() {
			return r.in.Err()
		}
		if err := r.exec(r.in.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(r.out, "* %v\n", err)
		}
	}
}

// exec runs a single command line.
func (r *repl) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]

	switch fields[0] {
	case "s", "step":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[0])
			}
			n = v
		}
		r.printStop(r.d.Step(n))
	case "c", "continue":
		r.printStop(r.d.Continue(r.maxSteps))
	case "b", "break":
		a, err := r.address(args)
		if err != nil {
			return err
		}
		if r.d.Breakpoints.Add(a) {
			fmt.Fprintf(r.out, "breakpoint set at 0x%04X\n", a)
		}
	case "d", "delete":
		a, err := r.address(args)
		if err != nil {
			return err
		}
		if !r.d.Breakpoints.Remove(a) {
			return fmt.Errorf("no breakpoint at 0x%04X", a)
		}
	case "l", "list":
		for _, a := range r.d.Breakpoints.List() {
			fmt.Fprintf(r.out, "0x%04X\n", a)
		}
	case "r", "regs":
		fmt.Fprintln(r.out, r.d.Registers())
	case "x":
		a, err := r.address(args)
		if err != nil {
			return err
		}
		n := 16
		if len(args) > 1 {
			if n, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid count %q", args[1])
			}
		}
		data, err := r.d.Peek(a, n)
		r.dump(a, data)
		return err
	case "m", "map":
		for _, region := range r.d.Regions() {
			fmt.Fprintf(r.out, "0x%04X-0x%04X %s\n", region.Start, region.End, region.Name)
		}
	case "digest":
		fmt.Fprintf(r.out, "%016x\n", r.d.Digest())
	case "resume":
		r.d.Resume()
	case "save":
		if len(args) == 0 {
			return errors.New("missing file")
		}
		b, err := r.d.Save()
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], b, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "saved %s\n", args[0])
	case "load":
		if len(args) == 0 {
			return errors.New("missing file")
		}
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := r.d.Load(b); err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.d.Registers())
	case "h", "help", "?":
		fmt.Fprintln(r.out, help)
	case "q", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	return nil
}

func (r *repl) address(args []string) (uint16, error) {
	if len(args) == 0 {
		return 0, errors.New("missing address")
	}
	return parseAddress(args[0])
}

func (r *repl) printStop(stop debugger.Stop) {
	fmt.Fprintln(r.out, stop)
	fmt.Fprintln(r.out, r.d.Registers())
}

// dump prints data as rows of 16 bytes.
func (r *repl) dump(address uint16, data []byte) {
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(r.out, "%04X:", address+uint16(i))
		for _, b := range data[i:end] {
			fmt.Fprintf(r.out, " %02X", b)
		}
		fmt.Fprintln(r.out)
	}
}
