// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import "log"

// renderNode is a DRM render node and whether this process may open it.
// Direct rendering needs read/write access to one.
type renderNode struct {
	path string
	err  error
}

func (n renderNode) accessible() bool {
	return n.err == nil
}

func logRenderNodes() {
	nodes := renderNodes()
	if len(nodes) == 0 {
		log.Printf("No DRM render nodes found\n")
		return
	}
	for _, n := range nodes {
		if n.accessible() {
			log.Printf("Render node %s is accessible\n", n.path)
		} else {
			log.Printf("Render node %s is not accessible: %v\n", n.path, n.err)
		}
	}
}
