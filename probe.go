// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"io"
	"log"
)

type probeOptions struct {
	screen      int
	direct      bool
	coreProfile bool
	versions    []glVersion // newest first
	floor       glVersion
}

// descend tries versions newest first and returns the first one create
// accepts. Nothing at or below floor is attempted.
func descend[T any](out io.Writer, versions []glVersion, floor glVersion, create func(glVersion) (T, bool)) (T, glVersion, bool) {
	var none T
	for _, v := range versions {
		// don't bother below the floor
		if !v.after(floor) {
			break
		}
		fmt.Fprintf(out, "Try to create a context for version %d.%d\n", v.Major, v.Minor)
		if c, ok := create(v); ok {
			fmt.Fprintf(out, "  Context created\n")
			return c, v, true
		}
	}
	return none, glVersion{}, false
}

type prober struct {
	glx  glxService
	out  io.Writer
	opts probeOptions

	extChecked      bool
	haveAttribsFunc bool
}

func contextAttribs(v glVersion, contextFlags, profileMask int32) []int32 {
	var attribs []int32
	if v.Major != 0 {
		attribs = append(attribs,
			glxContextMajorVersionARB, int32(v.Major),
			glxContextMinorVersionARB, int32(v.Minor))
	}
	if contextFlags != 0 {
		attribs = append(attribs, glxContextFlagsARB, contextFlags)
	}
	if profileMask != 0 {
		attribs = append(attribs, glxContextProfileMaskARB, profileMask)
	}
	return append(attribs, 0)
}

// createContextFlags tries to create a context of the given version. Some
// drivers (NVIDIA) only hand out a core profile when a version is named.
func (p *prober) createContextFlags(cfg fbConfig, v glVersion, contextFlags, profileMask int32) glxContext {
	if !p.extChecked {
		exts := p.glx.QueryExtensionsString(p.opts.screen)
		p.haveAttribsFunc = extensionSupported("GLX_ARB_create_context_profile", exts)
		p.extChecked = true
		if !p.haveAttribsFunc {
			log.Printf("GLX_ARB_create_context_profile not supported\n")
		}
	}
	if !p.haveAttribsFunc {
		return 0
	}

	ctx, xerr := p.glx.CreateContextAttribs(cfg, contextAttribs(v, contextFlags, profileMask), p.opts.direct)
	if xerr != 0 {
		log.Printf("Creating a %s context raised %s\n", v, xerr)
		if ctx != 0 {
			p.glx.DestroyContext(ctx)
		}
		return 0
	}
	if ctx == 0 {
		log.Printf("glXCreateContextAttribsARB returned no context for %s\n", v)
		return 0
	}
	if p.opts.direct && !p.glx.IsDirect(ctx) {
		log.Printf("Context for %s is not direct, discarding it\n", v)
		logRenderNodes()
		p.glx.DestroyContext(ctx)
		return 0
	}
	return ctx
}

// createContext returns the newest context the driver creates for cfg and
// the version that was requested for it. The default path requests no
// version, so the returned version is zero there.
func (p *prober) createContext(cfg fbConfig) (glxContext, glVersion, bool) {
	if p.opts.coreProfile {
		return descend(p.out, p.opts.versions, p.opts.floor, func(v glVersion) (glxContext, bool) {
			ctx := p.createContextFlags(cfg, v, 0, glxContextCoreProfileBitARB)
			return ctx, ctx != 0
		})
	}

	// GLX hands out the newest version that supports the full profile.
	ctx := p.glx.CreateNewContext(cfg, p.opts.direct)
	if ctx == 0 {
		return 0, glVersion{}, false
	}
	if p.opts.direct && !p.glx.IsDirect(ctx) {
		log.Printf("Default context is not direct, discarding it\n")
		logRenderNodes()
		p.glx.DestroyContext(ctx)
		return 0, glVersion{}, false
	}
	return ctx, glVersion{}, true
}
