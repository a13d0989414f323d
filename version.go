// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/blang/semver/v4"
)

// glVersion is an OpenGL major.minor pair as requested from GLX.
type glVersion struct {
	Major int
	Minor int
}

func (v glVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// after reports whether v is strictly newer than o.
func (v glVersion) after(o glVersion) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor > o.Minor
}

// list of known OpenGL versions, newest first
var knownVersions = []glVersion{
	{4, 6},
	{4, 5},
	{4, 4},
	{4, 3},
	{4, 2},
	{4, 1},
	{4, 0},
	{3, 3},
	{3, 2},
	{3, 1},
	{3, 0},
	{2, 1},
	{2, 0},
	{1, 5},
	{1, 4},
	{1, 3},
	{1, 2},
	{1, 1},
	{1, 0},
}

// core profile contexts don't exist below this
var defaultFloor = glVersion{3, 0}

func parseGLVersion(s string) (glVersion, error) {
	sv, err := semver.ParseTolerant(s)
	if err != nil {
		return glVersion{}, fmt.Errorf("invalid OpenGL version %q: %w", s, err)
	}
	if sv.Patch != 0 || len(sv.Pre) > 0 || len(sv.Build) > 0 {
		return glVersion{}, fmt.Errorf("invalid OpenGL version %q: want MAJOR.MINOR", s)
	}
	// the components travel to GLX as 32-bit attributes
	if sv.Major > math.MaxInt32 || sv.Minor > math.MaxInt32 {
		return glVersion{}, fmt.Errorf("invalid OpenGL version %q: out of range", s)
	}
	return glVersion{Major: int(sv.Major), Minor: int(sv.Minor)}, nil
}

// parseVersionList parses a version table and orders it newest first,
// dropping duplicates.
func parseVersionList(list []string) ([]glVersion, error) {
	versions := make([]glVersion, 0, len(list))
	seen := make(map[glVersion]bool)
	for _, s := range list {
		v, err := parseGLVersion(s)
		if err != nil {
			return nil, err
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].after(versions[j])
	})
	return versions, nil
}

// parseReportedVersion extracts the numeric prefix of a GL_VERSION string,
// e.g. "4.6 (Core Profile) Mesa 23.1.4" or "4.6.0 NVIDIA 535.54.03".
func parseReportedVersion(s string) (semver.Version, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return semver.Version{}, errors.New("empty version string")
	}
	return semver.ParseTolerant(fields[0])
}

func (v glVersion) semver() semver.Version {
	return semver.Version{Major: uint64(v.Major), Minor: uint64(v.Minor)}
}
