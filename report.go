// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"io"
	"log"
)

func profileLabel(coreProfile bool) string {
	if coreProfile {
		return "OpenGL core profile"
	}
	return "OpenGL"
}

// reportVersion prints the version line for a bound context. A pending GL
// error is only a warning.
func reportVersion(w io.Writer, coreProfile bool, requested glVersion, version string, glErr uint32) {
	if glErr != glNoError {
		fmt.Fprintf(w, "Warning: GL error 0x%x after glGetString(GL_VERSION)\n", glErr)
	}
	fmt.Fprintf(w, "%s version string: %s\n", profileLabel(coreProfile), version)
	checkReportedVersion(requested, version)
}

func checkReportedVersion(requested glVersion, version string) {
	got, err := parseReportedVersion(version)
	if err != nil {
		log.Printf("Couldn't parse version string %q: %v\n", version, err)
		return
	}
	log.Printf("Driver reports OpenGL %d.%d\n", got.Major, got.Minor)
	if requested == (glVersion{}) {
		return
	}
	if got.LT(requested.semver()) {
		log.Printf("Driver reports %d.%d but %s was requested\n", got.Major, got.Minor, requested)
	}
}
