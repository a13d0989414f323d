//go:build linux
// +build linux

package main

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

const renderNodeGlob = "/dev/dri/renderD*"

func renderNodes() []renderNode {
	return renderNodesMatching(renderNodeGlob)
}

func renderNodesMatching(pattern string) []renderNode {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	nodes := make([]renderNode, 0, len(paths))
	for _, p := range paths {
		nodes = append(nodes, renderNode{
			path: p,
			err:  unix.Access(p, unix.R_OK|unix.W_OK),
		})
	}
	return nodes
}
