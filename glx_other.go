//go:build !linux || noglx
// +build !linux noglx

package main

import (
	"errors"
)

// noGLX is used when the binary is built without the libGL binding. Every
// query ends at the display.
type noGLX struct{}

func newGLXService() glxService {
	return noGLX{}
}

func (noGLX) OpenDisplay(name string) error {
	return errors.New("built without GLX support")
}

func (noGLX) DisplayName(name string) string {
	return resolveDisplayName(name)
}

func (noGLX) CloseDisplay() {}

func (noGLX) ChooseFBConfigs(screen int, doubleBuffer bool) (fbConfigList, []fbConfig) {
	return 0, nil
}

func (noGLX) FreeFBConfigs(list fbConfigList) {}

func (noGLX) VisualFromFBConfig(cfg fbConfig) visualInfo { return 0 }

func (noGLX) FreeVisual(vis visualInfo) {}

func (noGLX) QueryExtensionsString(screen int) string { return "" }

func (noGLX) CreateContextAttribs(cfg fbConfig, attribs []int32, direct bool) (glxContext, xError) {
	return 0, 0
}

func (noGLX) CreateNewContext(cfg fbConfig, direct bool) glxContext { return 0 }

func (noGLX) IsDirect(ctx glxContext) bool { return false }

func (noGLX) DestroyContext(ctx glxContext) {}

func (noGLX) CreateWindow(screen int, vis visualInfo, width, height int) xWindow { return 0 }

func (noGLX) DestroyWindow(win xWindow) {}

func (noGLX) MakeCurrent(win xWindow, ctx glxContext) bool { return false }

func (noGLX) ReleaseCurrent() {}

func (noGLX) GetString(name uint32) string { return "" }

func (noGLX) GetError() uint32 { return glNoError }

func (noGLX) Sync(discard bool) {}
