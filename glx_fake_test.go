package main

import (
	"errors"
	"fmt"
	"sort"
)

const fakeExtensions = "GLX_ARB_create_context GLX_ARB_create_context_profile GLX_EXT_visual_info"

// fakeGLX is a glxService that hands out counted handles and records
// every call, so tests can check what was acquired and released.
type fakeGLX struct {
	openErr    error
	noDouble   bool // no double-buffered configs
	noConfigs  bool
	noVisual   bool
	extensions string

	maxCore      glVersion // newest version CreateContextAttribs accepts
	failure      xError    // X error raised by rejected requests
	strayContext bool      // rejected requests still return a context
	indirect     map[glVersion]bool

	newContextOK       bool
	newContextIndirect bool

	windowFails bool
	bindFails   bool
	version     string
	glErr       uint32

	next    uint64
	live    map[uint64]string
	direct  map[glxContext]bool
	display uint64
	binding uint64

	calls           []string
	bad             []string
	chooseCalls     []bool
	attempts        []glVersion
	attribs         [][]int32
	extQueries      int
	newContextCalls int
}

func newFakeGLX() *fakeGLX {
	return &fakeGLX{
		extensions:   fakeExtensions,
		maxCore:      glVersion{4, 6},
		newContextOK: true,
		version:      "4.6 (Core Profile) Mesa 23.1.4",
		live:         make(map[uint64]string),
		direct:       make(map[glxContext]bool),
	}
}

func (f *fakeGLX) acquire(kind string) uint64 {
	f.next++
	f.live[f.next] = kind
	f.calls = append(f.calls, "acquire "+kind)
	return f.next
}

func (f *fakeGLX) release(kind string, h uint64) {
	f.calls = append(f.calls, "release "+kind)
	if f.live[h] != kind {
		f.bad = append(f.bad, fmt.Sprintf("%s %d released but not live", kind, h))
		return
	}
	delete(f.live, h)
}

// leaks lists the kinds of every handle still outstanding.
func (f *fakeGLX) leaks() []string {
	var kinds []string
	for _, kind := range f.live {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (f *fakeGLX) acquired(kind string) int {
	n := 0
	for _, c := range f.calls {
		if c == "acquire "+kind {
			n++
		}
	}
	return n
}

func (f *fakeGLX) releases() []string {
	var rel []string
	for _, c := range f.calls {
		if len(c) > 8 && c[:8] == "release " {
			rel = append(rel, c[8:])
		}
	}
	return rel
}

func versionFromAttribs(attribs []int32) glVersion {
	var v glVersion
	for i := 0; i+1 < len(attribs); i += 2 {
		switch attribs[i] {
		case glxContextMajorVersionARB:
			v.Major = int(attribs[i+1])
		case glxContextMinorVersionARB:
			v.Minor = int(attribs[i+1])
		}
	}
	return v
}

func (f *fakeGLX) OpenDisplay(name string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.display = f.acquire("display")
	return nil
}

func (f *fakeGLX) DisplayName(name string) string {
	if name == "" {
		return ":0"
	}
	return name
}

func (f *fakeGLX) CloseDisplay() {
	f.release("display", f.display)
}

func (f *fakeGLX) ChooseFBConfigs(screen int, doubleBuffer bool) (fbConfigList, []fbConfig) {
	f.chooseCalls = append(f.chooseCalls, doubleBuffer)
	if f.noConfigs || (doubleBuffer && f.noDouble) {
		return 0, nil
	}
	return fbConfigList(f.acquire("fbconfigs")), []fbConfig{1, 2}
}

func (f *fakeGLX) FreeFBConfigs(list fbConfigList) {
	f.release("fbconfigs", uint64(list))
}

func (f *fakeGLX) VisualFromFBConfig(cfg fbConfig) visualInfo {
	if f.noVisual {
		return 0
	}
	return visualInfo(f.acquire("visual"))
}

func (f *fakeGLX) FreeVisual(vis visualInfo) {
	f.release("visual", uint64(vis))
}

func (f *fakeGLX) QueryExtensionsString(screen int) string {
	f.extQueries++
	return f.extensions
}

func (f *fakeGLX) newContext(direct bool) glxContext {
	ctx := glxContext(f.acquire("context"))
	f.direct[ctx] = direct
	return ctx
}

func (f *fakeGLX) CreateContextAttribs(cfg fbConfig, attribs []int32, direct bool) (glxContext, xError) {
	v := versionFromAttribs(attribs)
	f.attempts = append(f.attempts, v)
	f.attribs = append(f.attribs, attribs)
	if v.after(f.maxCore) {
		if f.strayContext {
			return f.newContext(true), f.failure
		}
		return 0, f.failure
	}
	return f.newContext(!f.indirect[v]), 0
}

func (f *fakeGLX) CreateNewContext(cfg fbConfig, direct bool) glxContext {
	f.newContextCalls++
	if !f.newContextOK {
		return 0
	}
	return f.newContext(!f.newContextIndirect)
}

func (f *fakeGLX) IsDirect(ctx glxContext) bool {
	return f.direct[ctx]
}

func (f *fakeGLX) DestroyContext(ctx glxContext) {
	f.release("context", uint64(ctx))
}

func (f *fakeGLX) CreateWindow(screen int, vis visualInfo, width, height int) xWindow {
	if f.windowFails {
		return 0
	}
	return xWindow(f.acquire("window"))
}

func (f *fakeGLX) DestroyWindow(win xWindow) {
	f.release("window", uint64(win))
}

func (f *fakeGLX) MakeCurrent(win xWindow, ctx glxContext) bool {
	if f.bindFails {
		return false
	}
	f.binding = f.acquire("binding")
	return true
}

func (f *fakeGLX) ReleaseCurrent() {
	f.release("binding", f.binding)
}

func (f *fakeGLX) GetString(name uint32) string {
	if name != glVersionEnum || f.binding == 0 {
		return ""
	}
	return f.version
}

func (f *fakeGLX) GetError() uint32 {
	return f.glErr
}

func (f *fakeGLX) Sync(discard bool) {
	f.calls = append(f.calls, "sync")
}

var errNoDisplay = errors.New("x11: cannot connect to the X server")
