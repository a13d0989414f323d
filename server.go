// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgbutil"
)

// names for glXQueryServerString
const (
	glxVendor     = 1
	glxVersion    = 2
	glxExtensions = 3
)

// resolveDisplayName returns name, or $DISPLAY when it is empty.
func resolveDisplayName(name string) string {
	if name != "" {
		return name
	}
	return os.Getenv("DISPLAY")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printServerInfo reports what the X server's GLX extension advertises.
// It speaks the X protocol directly, so it works even when libGL is broken.
func printServerInfo(w io.Writer, display string, screen int) error {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return fmt.Errorf("couldn't connect to X server: %w", err)
	}
	defer xu.Conn().Close()
	c := xu.Conn()

	roots := xu.Setup().Roots
	if screen < 0 || screen >= len(roots) {
		return fmt.Errorf("screen %d out of range, display has %d", screen, len(roots))
	}
	root := roots[screen]

	if err := glx.Init(c); err != nil {
		return fmt.Errorf("GLX extension unavailable: %w", err)
	}
	ver, err := glx.QueryVersion(c, 1, 4).Reply()
	if err != nil {
		return fmt.Errorf("glXQueryVersion failed: %w", err)
	}

	serverString := func(name uint32) (string, error) {
		r, err := glx.QueryServerString(c, uint32(screen), name).Reply()
		if err != nil {
			return "", fmt.Errorf("glXQueryServerString(%d) failed: %w", name, err)
		}
		return strings.TrimRight(r.String, "\x00"), nil
	}
	vendor, err := serverString(glxVendor)
	if err != nil {
		return err
	}
	version, err := serverString(glxVersion)
	if err != nil {
		return err
	}
	exts, err := serverString(glxExtensions)
	if err != nil {
		return err
	}
	log.Printf("Server GLX extensions: %s\n", exts)

	fbconfigs, err := glx.GetFBConfigs(c, uint32(screen)).Reply()
	if err != nil {
		return fmt.Errorf("glXGetFBConfigs failed: %w", err)
	}

	fmt.Fprintf(w, "name of display: %s\n", resolveDisplayName(display))
	fmt.Fprintf(w, "screen %d: %dx%d pixels, depth %d\n", screen, root.WidthInPixels, root.HeightInPixels, root.RootDepth)
	fmt.Fprintf(w, "GLX protocol version: %d.%d\n", ver.MajorVersion, ver.MinorVersion)
	fmt.Fprintf(w, "server glx vendor string: %s\n", vendor)
	fmt.Fprintf(w, "server glx version string: %s\n", version)
	fmt.Fprintf(w, "server GLX_ARB_create_context_profile: %s\n",
		yesNo(extensionSupported("GLX_ARB_create_context_profile", exts)))
	fmt.Fprintf(w, "server glx fbconfigs: %d\n", fbconfigs.NumFbConfigs)
	for _, n := range renderNodes() {
		if n.accessible() {
			fmt.Fprintf(w, "render node %s: accessible\n", n.path)
		} else {
			fmt.Fprintf(w, "render node %s: %v\n", n.path, n.err)
		}
	}
	return nil
}
