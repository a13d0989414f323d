// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW rejects a profile hint below 3.2.
var minProfileVersion = glVersion{3, 2}

type windowHint struct {
	hint  glfw.Hint
	value int
}

// glfwHints lists the window hints for a context of version v. The zero
// version leaves the context hints at their defaults.
func glfwHints(v glVersion, coreProfile bool) []windowHint {
	hints := []windowHint{{glfw.Visible, glfw.False}}
	if v == (glVersion{}) {
		return hints
	}
	hints = append(hints,
		windowHint{glfw.ContextVersionMajor, v.Major},
		windowHint{glfw.ContextVersionMinor, v.Minor})
	if coreProfile && !minProfileVersion.after(v) {
		return append(hints, windowHint{glfw.OpenGLProfile, glfw.OpenGLCoreProfile})
	}
	return append(hints, windowHint{glfw.OpenGLProfile, glfw.OpenGLAnyProfile})
}

// glfwFloor is the floor for the core path: below 3.2 GLFW can't be asked
// for a core profile, so nothing under it is attempted.
func glfwFloor(floor glVersion) glVersion {
	atLeast := glVersion{minProfileVersion.Major, minProfileVersion.Minor - 1}
	if atLeast.after(floor) {
		return atLeast
	}
	return floor
}

type glfwWindow interface {
	MakeContextCurrent()
	Destroy()
}

// glfwService is the part of GLFW and go-gl the GLFW backend uses.
type glfwService interface {
	Init() error
	Terminate()
	CreateWindow(hints []windowHint, width, height int, title string) (glfwWindow, error)
	DetachCurrentContext()
	// LoadGL resolves GL entry points for the current context.
	LoadGL() error
	GetString(name uint32) string
	GetError() uint32
}

var errNoWindow = errors.New("no window returned")

type goGLFW struct{}

func newGLFWService() glfwService {
	return goGLFW{}
}

func (goGLFW) Init() error { return glfw.Init() }

func (goGLFW) Terminate() { glfw.Terminate() }

func (goGLFW) CreateWindow(hints []windowHint, width, height int, title string) (glfwWindow, error) {
	glfw.DefaultWindowHints()
	for _, h := range hints {
		glfw.WindowHint(h.hint, h.value)
	}
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	// unaccepted platform errors come back as a nil window without an error
	if win == nil {
		return nil, errNoWindow
	}
	return win, nil
}

func (goGLFW) DetachCurrentContext() { glfw.DetachCurrentContext() }

func (goGLFW) LoadGL() error { return gl.Init() }

func (goGLFW) GetString(name uint32) string { return gl.GoStr(gl.GetString(name)) }

func (goGLFW) GetError() uint32 { return gl.GetError() }

func glfwCreateWindow(gs glfwService, v glVersion, coreProfile bool) (glfwWindow, bool) {
	win, err := gs.CreateWindow(glfwHints(v, coreProfile), hostWindowSize, hostWindowSize, appName)
	if err != nil {
		log.Printf("GLFW couldn't create a %s context: %v\n", v, err)
		return nil, false
	}
	return win, true
}

// glfwQueryVersion runs the same probe as queryVersion through GLFW, which
// picks GLX or EGL itself.
func glfwQueryVersion(gs glfwService, opts probeOptions, stdout, stderr io.Writer) (res outcome) {
	initialized := false
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Error: GLFW: %v\n", r)
			res = outcomeBindFailed
			if !initialized {
				res = outcomeDisplayFailed
			}
		}
	}()

	if err := gs.Init(); err != nil {
		fmt.Fprintf(stderr, "Error: unable to initialize GLFW: %v\n", err)
		return outcomeDisplayFailed
	}
	defer gs.Terminate()
	initialized = true

	var (
		win       glfwWindow
		requested glVersion
		ok        bool
	)
	floor := glfwFloor(opts.floor)
	if opts.coreProfile {
		win, requested, ok = descend(stdout, opts.versions, floor, func(v glVersion) (glfwWindow, bool) {
			return glfwCreateWindow(gs, v, true)
		})
	} else {
		win, ok = glfwCreateWindow(gs, glVersion{}, false)
	}
	if !ok {
		if opts.coreProfile {
			fmt.Fprintf(stderr, "Error: couldn't create a core profile context newer than OpenGL %s\n", floor)
		} else {
			fmt.Fprintf(stderr, "Error: glfwCreateWindow failed\n")
		}
		return outcomeNoContext
	}
	defer win.Destroy()

	win.MakeContextCurrent()
	defer gs.DetachCurrentContext()

	if err := gs.LoadGL(); err != nil {
		fmt.Fprintf(stderr, "Error: couldn't load OpenGL entry points: %v\n", err)
		return outcomeBindFailed
	}
	version := gs.GetString(gl.VERSION)
	reportVersion(stdout, opts.coreProfile, requested, version, gs.GetError())
	return outcomeOK
}
