// Command gbcore loads a ROM and debugs it, either from the terminal
// or over a websocket.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/debugger"
	"github.com/thelolagemann/gbcore/pkg/debugger/web"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gbcore:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	c, err := parseFlags(args)
	if err != nil {
		return err
	}
	if c.ROM == "" {
		return fmt.Errorf("no rom given, use -rom")
	}

	logger, err := log.NewWithLevel(os.Stderr, c.LogLevel)
	if err != nil {
		return err
	}

	// open the rom file
	rom, err := utils.LoadFile(c.ROM)
	if err != nil {
		return err
	}

	d, err := newDebugger(c, rom, logger)
	if err != nil {
		return err
	}

	if c.Listen != "" {
		s := web.NewServer(d, logger, web.WithMaxSteps(c.MaxSteps))
		defer s.Close()
		return s.ListenAndServe(c.Listen)
	}
	return newREPL(d, os.Stdin, os.Stdout, c.MaxSteps).run()
}

// parseFlags builds the configuration from the -config file, then
// applies every flag given on the command line over it.
func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("gbcore", flag.ContinueOnError)
	configFile := fs.String("config", "", "YAML configuration file")
	romFile := fs.String("rom", "", "The rom file to load")
	enhanced := fs.Bool("enhanced", false, "Size the working and video RAM for CGB mode")
	bankSelect := fs.Bool("bank-select", false, "Switch RAM banks on SVBK/VBK writes (with -enhanced)")
	listen := fs.String("listen", "", "Serve the websocket debugger on this address instead of the terminal")
	breakpoint := fs.String("break", "", "Comma separated breakpoint addresses, in hex")
	entryPoint := fs.String("entry", "", "Start executing from this address, in hex")
	state := fs.String("state", "", "Restore a snapshot written by the save command")
	logLevel := fs.String("log-level", "info", "Log level (error, info, debug)")
	maxSteps := fs.Int("max-steps", 1_000_000, "Most instructions executed by a single continue, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	c := defaultConfig()
	if *configFile != "" {
		var err error
		if c, err = loadConfig(*configFile); err != nil {
			return c, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			c.ROM = *romFile
		case "enhanced":
			c.Enhanced = *enhanced
		case "bank-select":
			c.BankSelect = *bankSelect
		case "listen":
			c.Listen = *listen
		case "break":
			c.Breakpoints = append(c.Breakpoints, *breakpoint)
		case "entry":
			c.EntryPoint = *entryPoint
		case "state":
			c.State = *state
		case "log-level":
			c.LogLevel = *logLevel
		case "max-steps":
			c.MaxSteps = *maxSteps
		}
	})
	return c, nil
}

func newDebugger(c Config, rom []byte, logger log.Logger) (*debugger.Debugger, error) {
	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if c.Enhanced {
		opts = append(opts, gameboy.Enhanced())
	}
	if c.BankSelect {
		opts = append(opts, gameboy.WithBankSelect())
	}
	if c.EntryPoint != "" {
		pc, err := parseAddress(c.EntryPoint)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gameboy.WithEntryPoint(pc))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return nil, err
	}
	if gb.Header.Title != "" {
		logger.Infof("loaded %s", gb.Header.String())
	}

	breakpoints, err := c.breakpoints()
	if err != nil {
		return nil, err
	}
	d := debugger.New(gb, debugger.WithLogger(logger), debugger.WithBreakpoints(breakpoints...))

	if c.State != "" {
		b, err := os.ReadFile(c.State)
		if err != nil {
			return nil, err
		}
		if err := d.Load(b); err != nil {
			return nil, fmt.Errorf("%s: %w", c.State, err)
		}
		logger.Infof("restored %s", c.State)
	}
	return d, nil
}
