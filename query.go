// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"io"
	"log"
)

// outcome is how far a version query got.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeDisplayFailed
	outcomeNoConfig
	outcomeNoContext
	outcomeBindFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeOK:
		return "ok"
	case outcomeDisplayFailed:
		return "display failed"
	case outcomeNoConfig:
		return "no fbconfig"
	case outcomeNoContext:
		return "no context"
	case outcomeBindFailed:
		return "bind failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// exitCode is the process status for o. Only a missing display is fatal.
func (o outcome) exitCode() int {
	if o == outcomeDisplayFailed {
		return -1
	}
	return 0
}

const hostWindowSize = 100

// chooseFBConfig picks RGBA configurations, double-buffered if possible.
func chooseFBConfig(g glxService, screen int) (fbConfigList, []fbConfig) {
	list, configs := g.ChooseFBConfigs(screen, true)
	if len(configs) > 0 {
		return list, configs
	}
	if list != 0 {
		g.FreeFBConfigs(list)
	}
	log.Printf("No double-buffered fbconfig, trying single-buffered\n")
	return g.ChooseFBConfigs(screen, false)
}

// queryVersion opens the display, creates the newest context the probe
// finds, binds it to a throwaway window and reports GL_VERSION. Everything
// acquired is released in reverse order before it returns.
func queryVersion(g glxService, display string, opts probeOptions, stdout, stderr io.Writer) outcome {
	if err := g.OpenDisplay(display); err != nil {
		log.Printf("Couldn't open display: %v\n", err)
		fmt.Fprintf(stderr, "Error: unable to open display %s\n", g.DisplayName(display))
		return outcomeDisplayFailed
	}
	defer g.CloseDisplay()

	var (
		ctx       glxContext
		requested glVersion
		vis       visualInfo
	)
	list, configs := chooseFBConfig(g, opts.screen)
	if len(configs) > 0 {
		p := &prober{glx: g, out: stdout, opts: opts}
		ctx, requested, _ = p.createContext(configs[0])
		vis = g.VisualFromFBConfig(configs[0])
	}
	if list != 0 {
		g.FreeFBConfigs(list)
	}

	if vis == 0 {
		fmt.Fprintf(stderr, "Error: couldn't find RGB GLX visual or fbconfig\n")
		if ctx != 0 {
			g.DestroyContext(ctx)
		}
		return outcomeNoConfig
	}
	defer g.FreeVisual(vis)

	if ctx == 0 {
		if opts.coreProfile {
			fmt.Fprintf(stderr, "Error: couldn't create a core profile context newer than OpenGL %s\n", opts.floor)
		} else {
			fmt.Fprintf(stderr, "Error: glXCreateContext failed\n")
		}
		return outcomeNoContext
	}
	defer g.DestroyContext(ctx)

	// a window just so the context can be bound
	win := g.CreateWindow(opts.screen, vis, hostWindowSize, hostWindowSize)
	if win == 0 {
		fmt.Fprintf(stderr, "Error: couldn't create window\n")
		return outcomeBindFailed
	}
	defer func() {
		g.DestroyWindow(win)
		g.Sync(true)
	}()

	if !g.MakeCurrent(win, ctx) {
		fmt.Fprintf(stderr, "Error: glXMakeCurrent failed\n")
		return outcomeBindFailed
	}
	defer g.ReleaseCurrent()

	version := g.GetString(glVersionEnum)
	reportVersion(stdout, opts.coreProfile, requested, version, g.GetError())
	return outcomeOK
}
