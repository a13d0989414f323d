// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
)

var appName = "glversion"

var version = "unknown"     // will be changed by build
var distribution = "custom" // ditto

func init() {
	// GLX and GLFW state is per thread; keep main on one.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:], newGLXService(), newGLFWService(), os.Stdout, os.Stderr))
}

func run(args []string, g glxService, gs glfwService, stdout, stderr io.Writer) int {
	opt, err := parseCLIOpts(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opt.doLog {
		log.SetOutput(stdout)
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("Application starting. Version: %s (%s)\n", version, distribution)

	configPath := opt.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	conf, err := readConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	opt.apply(conf)
	probeOpts, err := conf.probeOptions()
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid settings: %v\n", err)
		return 1
	}

	if opt.dumpConfig {
		if err := writeConfig(stdout, conf); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if opt.server {
		if err := printServerInfo(stdout, conf.Display, conf.Screen); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return -1
		}
		return 0
	}

	var res outcome
	switch conf.Backend {
	case backendGLFW:
		res = glfwQueryVersion(gs, probeOpts, stdout, stderr)
	default:
		res = queryVersion(g, conf.Display, probeOpts, stdout, stderr)
	}
	log.Printf("Query finished: %s\n", res)
	return res.exitCode()
}
