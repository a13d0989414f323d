// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"strings"
)

// Handles to resources owned by the X server or libGL. Zero is never a
// valid handle.
type (
	fbConfigList uint32
	fbConfig     uint32
	visualInfo   uint32
	glxContext   uint32
	xWindow      uint64
)

// glxService is the slice of Xlib and GLX this tool drives. The real
// implementation talks to libX11/libGL through cgo.
type glxService interface {
	OpenDisplay(name string) error
	// DisplayName resolves name the way XDisplayName does.
	DisplayName(name string) string
	CloseDisplay()

	// ChooseFBConfigs returns the RGBA configurations for screen matching
	// the requested buffering. The list must be released with FreeFBConfigs.
	ChooseFBConfigs(screen int, doubleBuffer bool) (fbConfigList, []fbConfig)
	FreeFBConfigs(list fbConfigList)
	VisualFromFBConfig(cfg fbConfig) visualInfo
	FreeVisual(vis visualInfo)

	QueryExtensionsString(screen int) string
	// CreateContextAttribs calls glXCreateContextAttribsARB with a
	// temporary X error handler installed. A non-zero xError is the code
	// of the X error raised by the request.
	CreateContextAttribs(cfg fbConfig, attribs []int32, direct bool) (glxContext, xError)
	CreateNewContext(cfg fbConfig, direct bool) glxContext
	IsDirect(ctx glxContext) bool
	DestroyContext(ctx glxContext)

	CreateWindow(screen int, vis visualInfo, width, height int) xWindow
	DestroyWindow(win xWindow)
	MakeCurrent(win xWindow, ctx glxContext) bool
	ReleaseCurrent()

	GetString(name uint32) string
	GetError() uint32
	Sync(discard bool)
}

// GLX_ARB_create_context and GLX_ARB_create_context_profile tokens.
const (
	glxContextMajorVersionARB   = 0x2091
	glxContextMinorVersionARB   = 0x2092
	glxContextFlagsARB          = 0x2094
	glxContextProfileMaskARB    = 0x9126
	glxContextCoreProfileBitARB = 0x00000001
)

// GL enums used by the reporter.
const (
	glVersionEnum = 0x1F02
	glNoError     = 0
)

// xError is an X protocol error code delivered to the error handler.
type xError uint8

var xErrorNames = map[xError]string{
	1:  "BadRequest",
	2:  "BadValue",
	3:  "BadWindow",
	8:  "BadMatch",
	9:  "BadDrawable",
	10: "BadAccess",
	11: "BadAlloc",
	16: "BadLength",
	17: "BadImplementation",
}

func (e xError) String() string {
	if name, ok := xErrorNames[e]; ok {
		return fmt.Sprintf("%s (%d)", name, uint8(e))
	}
	// GLX errors are offset by the extension's error base
	return fmt.Sprintf("X error %d", uint8(e))
}

// extensionSupported reports whether ext is a whole token in the
// space-separated extension list.
func extensionSupported(ext, extensions string) bool {
	for _, e := range strings.Fields(extensions) {
		if e == ext {
			return true
		}
	}
	return false
}
