// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command vtsnap runs a command under a pseudo terminal, feeds its output
// through the terminal emulation core and, when the command exits, repaints
// the final screen on the invoking terminal. With --stdin it interprets a
// recorded byte stream instead of running anything.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	_ "github.com/ericwq/terminfo/base"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/r3bl-org/r3bl-open-core-sub007/render"
	"github.com/r3bl-org/r3bl-open-core-sub007/terminal"
	"github.com/r3bl-org/r3bl-open-core-sub007/util"
)

const (
	_PACKAGE_STRING = "r3bl-open-core"
	_COMMAND_NAME   = "vtsnap"
	_PATH_BSHELL    = "/bin/sh"
)

var BuildVersion = "0.1.0" // ready for ldflags

var usage = `Usage:
  ` + _COMMAND_NAME + ` [-v] [-h]
  ` + _COMMAND_NAME + ` [--verbose] [-t TERM] [--rows N] [--cols N] [-- command...]
  ` + _COMMAND_NAME + ` [--verbose] [-t TERM] [--rows N] [--cols N] --stdin
Options:
  -h, --help     print this message
  -v, --version  print version information
  -t, --term     destination TERM (default $TERM)
      --truecolor  render with 24-bit color regardless of terminfo
      --rows     screen height (default: the invoking terminal's)
      --cols     screen width (default: the invoking terminal's)
      --stdin    interpret a byte stream from stdin instead of a command
      --verbose  verbose output (such as 1)
     -- command  command and options (note the space before command)
`

func printVersion() {
	fmt.Printf("%s (%s) [build %s]\n\n", _COMMAND_NAME, _PACKAGE_STRING, BuildVersion)
	fmt.Println("This is free software: you are free to change and redistribute it.")
	fmt.Println("There is NO WARRANTY, to the extent permitted by law.")
}

func printUsage(hint, usage string) {
	if hint != "" {
		fmt.Printf("Hints: %s\n%s", hint, usage)
	} else {
		fmt.Printf("%s", usage)
	}
}

type Config struct {
	version   bool   // print version information
	verbose   int    // verbose output
	term      string // destination TERM
	truecolor bool   // force 24-bit color output
	rows      int    // screen height
	cols      int    // screen width
	fromStdin bool   // interpret stdin instead of running a command

	commandPath string   // command path
	commandArgv []string // the positional (non-flag) command-line arguments
}

// parseFlags parses the command-line arguments provided to the program.
// Typically os.Args[0] is provided as 'progname' and os.Args[1:] as 'args'.
// Returns the Config in case parsing succeeded, or an error. In any case, the
// output of the flag.Parse is returned in output.
// A special case is usage requests with -h or -help: then the error
// flag.ErrHelp is returned and output will contain the usage message.
func parseFlags(progname string, args []string) (config *Config, output string, err error) {
	flagSet := flag.NewFlagSet(progname, flag.ContinueOnError)
	var buf bytes.Buffer
	flagSet.SetOutput(&buf)

	var conf Config

	flagSet.IntVar(&conf.verbose, "verbose", 0, "verbose output")

	flagSet.BoolVar(&conf.version, "version", false, "print version information")
	flagSet.BoolVar(&conf.version, "v", false, "print version information")

	flagSet.StringVar(&conf.term, "term", "", "destination TERM")
	flagSet.StringVar(&conf.term, "t", "", "destination TERM")

	flagSet.BoolVar(&conf.truecolor, "truecolor", false, "force 24-bit color output")

	flagSet.IntVar(&conf.rows, "rows", 0, "screen height")
	flagSet.IntVar(&conf.cols, "cols", 0, "screen width")

	flagSet.BoolVar(&conf.fromStdin, "stdin", false, "interpret stdin")

	err = flagSet.Parse(args)
	if err != nil {
		return nil, buf.String(), err
	}

	// get the non-flag command-line arguments.
	conf.commandArgv = flagSet.Args()
	return &conf, buf.String(), nil
}

// buildConfig fills in the defaults: TERM from the environment, dimensions
// from the invoking terminal, the shell as the command.
func (conf *Config) buildConfig() (string, bool) {
	if conf.version {
		return "", true
	}

	if conf.term == "" {
		conf.term = os.Getenv("TERM")
	}

	if conf.cols == 0 || conf.rows == 0 {
		cols, rows := 80, 24
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if c, r, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				cols, rows = c, r
			}
		}
		if conf.cols == 0 {
			conf.cols = cols
		}
		if conf.rows == 0 {
			conf.rows = rows
		}
	}
	if conf.cols < 1 || conf.rows < 1 {
		return "dimensions must be positive", false
	}

	if conf.fromStdin {
		if len(conf.commandArgv) > 0 {
			return "--stdin takes no command", false
		}
		return "", true
	}

	if len(conf.commandArgv) == 0 {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = _PATH_BSHELL
		}
		conf.commandArgv = []string{shell}
	}
	conf.commandPath = conf.commandArgv[0]

	return "", true
}

// snapshot guards the emulator: the pty reader and the winch handler touch
// it from different goroutines.
type snapshot struct {
	sync.Mutex
	emu *terminal.Emulator
}

func (s *snapshot) feed(chunk []byte) {
	s.Lock()
	defer s.Unlock()
	s.emu.HandleStream(chunk)
}

func (s *snapshot) resize(cols, rows int) {
	s.Lock()
	defer s.Unlock()
	s.emu.Resize(cols, rows)
}

// consume pumps r into the emulator until EOF.
func (s *snapshot) consume(r io.Reader) error {
	buf := make([]byte, 16384)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.feed(buf[:n])
		}
		if err != nil {
			s.Lock()
			s.emu.Flush()
			s.Unlock()
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// runCommand starts the command under a pty sized like the emulator and
// consumes its output until it exits. SIGWINCH on the invoking terminal
// resizes both the pty and the emulator.
func runCommand(conf *Config, snap *snapshot) error {
	cmd := exec.Command(conf.commandPath, conf.commandArgv[1:]...)
	cmd.Env = append(os.Environ(), "TERM="+conf.term)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(conf.rows),
		Cols: uint16(conf.cols),
	})
	if err != nil {
		return err
	}
	defer ptmx.Close()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
			if err != nil || ws.Col == 0 || ws.Row == 0 {
				continue
			}
			snap.resize(int(ws.Col), int(ws.Row))
			if err := pty.Setsize(ptmx, &pty.Winsize{Rows: ws.Row, Cols: ws.Col}); err != nil {
				util.Logger.Warn("resize pty", "error", err)
			}
		}
	}()

	eg := errgroup.Group{}
	eg.Go(func() error {
		// reading the ptmx returns EIO once the child is gone
		if err := snap.consume(ptmx); err != nil {
			util.Logger.Debug("pty read finished", "error", err)
		}
		return nil
	})
	eg.Go(func() error {
		return cmd.Wait()
	})
	return eg.Wait()
}

func main() {
	conf, output, err := parseFlags(os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		printUsage("", usage)
		return
	} else if err != nil {
		printUsage(err.Error(), usage)
		os.Exit(1)
	} else if hint, ok := conf.buildConfig(); !ok {
		printUsage(hint, usage)
		os.Exit(1)
	}
	_ = output

	if conf.version {
		printVersion()
		return
	}

	util.Logger.SetOutput(os.Stderr)
	if conf.verbose > 0 {
		util.Logger.SetLevel(util.LevelTrace)
	}

	caps := render.DetectCapability(conf.term, os.LookupEnv)
	if conf.truecolor {
		caps.Profile = render.ProfileTrueColor
	}
	snap := &snapshot{emu: terminal.NewEmulator(conf.cols, conf.rows)}

	if conf.fromStdin {
		err = snap.consume(os.Stdin)
	} else {
		err = runCommand(conf, snap)
	}
	if err != nil {
		util.Logger.Warn("session ended", "error", err)
	}

	display := render.NewDisplay(caps)
	frame, err := display.NewFrame(snap.emu.Grid())
	if err != nil {
		util.Logger.Fatal("render frame", "error", err)
	}
	os.Stdout.Write(frame)
	os.Stdout.WriteString("\r\n")
}
