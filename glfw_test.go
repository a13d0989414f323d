package main

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type fakeGLFWWindow struct {
	f *fakeGLFW
}

func (w *fakeGLFWWindow) MakeContextCurrent() {
	w.f.calls = append(w.f.calls, "make current")
	w.f.current = true
}

func (w *fakeGLFWWindow) Destroy() {
	w.f.calls = append(w.f.calls, "destroy window")
}

// fakeGLFW accepts core profile windows up to maxCore and records what was
// asked of it.
type fakeGLFW struct {
	initErr  error
	panicOn  string
	maxCore  glVersion
	loadErr  error
	version  string
	glErr    uint32
	current  bool
	attempts []glVersion
	hints    [][]windowHint
	calls    []string
}

func newFakeGLFW() *fakeGLFW {
	return &fakeGLFW{
		maxCore: glVersion{4, 6},
		version: "4.6 (Core Profile) Mesa 23.1.4",
	}
}

func (f *fakeGLFW) Init() error {
	f.calls = append(f.calls, "init")
	if f.panicOn == "init" {
		panic("glfw: not initialized")
	}
	return f.initErr
}

func (f *fakeGLFW) Terminate() {
	f.calls = append(f.calls, "terminate")
}

func (f *fakeGLFW) CreateWindow(hints []windowHint, width, height int, title string) (glfwWindow, error) {
	if f.panicOn == "window" {
		panic("glfw: invalid value")
	}
	f.hints = append(f.hints, hints)
	var v glVersion
	for _, h := range hints {
		switch h.hint {
		case glfw.ContextVersionMajor:
			v.Major = h.value
		case glfw.ContextVersionMinor:
			v.Minor = h.value
		}
	}
	f.attempts = append(f.attempts, v)
	if v.after(f.maxCore) {
		return nil, errNoWindow
	}
	f.calls = append(f.calls, "create window")
	return &fakeGLFWWindow{f: f}, nil
}

func (f *fakeGLFW) DetachCurrentContext() {
	f.calls = append(f.calls, "detach")
	f.current = false
}

func (f *fakeGLFW) LoadGL() error {
	return f.loadErr
}

func (f *fakeGLFW) GetString(name uint32) string {
	if !f.current || name != glVersionEnum {
		return ""
	}
	return f.version
}

func (f *fakeGLFW) GetError() uint32 {
	return f.glErr
}

func TestGLFWHints(t *testing.T) {
	tests := []struct {
		name string
		v    glVersion
		core bool
		want []windowHint
	}{
		{
			name: "4.6 core",
			v:    glVersion{4, 6},
			core: true,
			want: []windowHint{
				{glfw.Visible, glfw.False},
				{glfw.ContextVersionMajor, 4},
				{glfw.ContextVersionMinor, 6},
				{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
			},
		},
		{
			name: "3.2 core",
			v:    glVersion{3, 2},
			core: true,
			want: []windowHint{
				{glfw.Visible, glfw.False},
				{glfw.ContextVersionMajor, 3},
				{glfw.ContextVersionMinor, 2},
				{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
			},
		},
		{
			name: "3.1 core",
			v:    glVersion{3, 1},
			core: true,
			want: []windowHint{
				{glfw.Visible, glfw.False},
				{glfw.ContextVersionMajor, 3},
				{glfw.ContextVersionMinor, 1},
				{glfw.OpenGLProfile, glfw.OpenGLAnyProfile},
			},
		},
		{
			name: "4.6 any",
			v:    glVersion{4, 6},
			want: []windowHint{
				{glfw.Visible, glfw.False},
				{glfw.ContextVersionMajor, 4},
				{glfw.ContextVersionMinor, 6},
				{glfw.OpenGLProfile, glfw.OpenGLAnyProfile},
			},
		},
		{
			name: "default",
			want: []windowHint{{glfw.Visible, glfw.False}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := glfwHints(tt.v, tt.core); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("glfwHints(%s, %v) = %v, want %v", tt.v, tt.core, got, tt.want)
			}
		})
	}
}

func TestGLFWFloor(t *testing.T) {
	tests := []struct {
		floor, want glVersion
	}{
		{glVersion{3, 0}, glVersion{3, 1}},
		{glVersion{2, 1}, glVersion{3, 1}},
		{glVersion{3, 1}, glVersion{3, 1}},
		{glVersion{3, 3}, glVersion{3, 3}},
	}
	for _, tt := range tests {
		if got := glfwFloor(tt.floor); got != tt.want {
			t.Errorf("glfwFloor(%s) = %s, want %s", tt.floor, got, tt.want)
		}
	}
}

func TestGLFWQueryVersion(t *testing.T) {
	f := newFakeGLFW()
	f.maxCore = glVersion{4, 3}
	var stdout, stderr bytes.Buffer

	res := glfwQueryVersion(f, coreOptions(), &stdout, &stderr)
	if res != outcomeOK {
		t.Fatalf("outcome = %s, stderr %q", res, stderr.String())
	}
	if want := versionsFrom(glVersion{4, 3}); !reflect.DeepEqual(f.attempts, want) {
		t.Errorf("attempted %v, want %v", f.attempts, want)
	}
	if !strings.HasSuffix(stdout.String(), "Try to create a context for version 4.3\n  Context created\nOpenGL core profile version string: 4.6 (Core Profile) Mesa 23.1.4\n") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
	want := []string{"init", "create window", "make current", "detach", "destroy window", "terminate"}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls %v, want %v", f.calls, want)
	}
}

func TestGLFWCorePathOnlyHintsCoreProfiles(t *testing.T) {
	f := newFakeGLFW()
	f.maxCore = glVersion{3, 1}
	var stdout, stderr bytes.Buffer

	res := glfwQueryVersion(f, coreOptions(), &stdout, &stderr)
	if res != outcomeNoContext {
		t.Fatalf("outcome = %s", res)
	}
	if want := versionsFrom(glVersion{3, 2}); !reflect.DeepEqual(f.attempts, want) {
		t.Errorf("attempted %v, want %v", f.attempts, want)
	}
	for _, hints := range f.hints {
		if last := hints[len(hints)-1]; last != (windowHint{glfw.OpenGLProfile, glfw.OpenGLCoreProfile}) {
			t.Errorf("core path hinted %v", hints)
		}
	}
	if want := "Error: couldn't create a core profile context newer than OpenGL 3.1\n"; stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
	if strings.Contains(stdout.String(), "version string") {
		t.Errorf("reported a version:\n%s", stdout.String())
	}
	if f.calls[len(f.calls)-1] != "terminate" {
		t.Errorf("GLFW not terminated: %v", f.calls)
	}
}

func TestGLFWDefaultContext(t *testing.T) {
	f := newFakeGLFW()
	f.version = "4.6 (Compatibility Profile) Mesa 23.1.4"
	var stdout bytes.Buffer
	opts := probeOptions{direct: true}

	if res := glfwQueryVersion(f, opts, &stdout, new(bytes.Buffer)); res != outcomeOK {
		t.Fatalf("outcome = %s", res)
	}
	if want := "OpenGL version string: 4.6 (Compatibility Profile) Mesa 23.1.4\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if want := []glVersion{{}}; !reflect.DeepEqual(f.attempts, want) {
		t.Errorf("attempted %v, want a single default window", f.attempts)
	}
}

func TestGLFWFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *fakeGLFW)
		want   outcome
		stderr string
	}{
		{
			name:   "init",
			setup:  func(f *fakeGLFW) { f.initErr = errors.New("X11: failed to open display") },
			want:   outcomeDisplayFailed,
			stderr: "Error: unable to initialize GLFW: X11: failed to open display\n",
		},
		{
			name:   "init panic",
			setup:  func(f *fakeGLFW) { f.panicOn = "init" },
			want:   outcomeDisplayFailed,
			stderr: "Error: GLFW: glfw: not initialized\n",
		},
		{
			name:   "window panic",
			setup:  func(f *fakeGLFW) { f.panicOn = "window" },
			want:   outcomeBindFailed,
			stderr: "Error: GLFW: glfw: invalid value\n",
		},
		{
			name:   "load",
			setup:  func(f *fakeGLFW) { f.loadErr = errors.New("missing glGetString") },
			want:   outcomeBindFailed,
			stderr: "Error: couldn't load OpenGL entry points: missing glGetString\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeGLFW()
			tt.setup(f)
			var stderr bytes.Buffer

			res := glfwQueryVersion(f, coreOptions(), new(bytes.Buffer), &stderr)
			if res != tt.want {
				t.Errorf("outcome = %s, want %s", res, tt.want)
			}
			if res.exitCode() != tt.want.exitCode() {
				t.Errorf("exit code %d", res.exitCode())
			}
			if stderr.String() != tt.stderr {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.stderr)
			}
		})
	}
}
