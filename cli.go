package main

import (
	"flag"
	"io"
)

type CLIOpts struct {
	doLog       bool
	configPath  string
	dumpConfig  bool
	server      bool
	display     string
	screen      int
	direct      bool
	coreProfile bool
	backend     string

	// names of the flags given on the command line
	set map[string]bool
}

func parseCLIOpts(args []string, output io.Writer) (CLIOpts, error) {
	var opt CLIOpts
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&opt.doLog, "log", false, "Print debugging output to stdout")
	fs.StringVar(&opt.configPath, "config", "", "Read settings from this TOML file instead of the default location")
	fs.BoolVar(&opt.dumpConfig, "dump-config", false, "Print the effective settings as TOML and exit")
	fs.BoolVar(&opt.server, "server", false, "Print what the X server's GLX extension advertises and exit")
	fs.StringVar(&opt.display, "display", "", "X display to connect to (default $DISPLAY)")
	fs.IntVar(&opt.screen, "screen", 0, "X screen to query")
	fs.BoolVar(&opt.direct, "direct", true, "Only accept direct rendering contexts")
	fs.BoolVar(&opt.coreProfile, "core", true, "Probe core profile contexts, newest version first")
	fs.StringVar(&opt.backend, "backend", backendGLX, "Context backend: glx or glfw")
	if err := fs.Parse(args); err != nil {
		return opt, err
	}

	opt.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opt.set[f.Name] = true
	})
	return opt, nil
}

// apply overrides conf with every setting given explicitly on the command
// line, so unset flags don't clobber the config file.
func (opt CLIOpts) apply(conf *config) {
	if opt.set["display"] {
		conf.Display = opt.display
	}
	if opt.set["screen"] {
		conf.Screen = opt.screen
	}
	if opt.set["direct"] {
		conf.Direct = opt.direct
	}
	if opt.set["core"] {
		conf.CoreProfile = opt.coreProfile
	}
	if opt.set["backend"] {
		conf.Backend = opt.backend
	}
}
