//go:build !linux
// +build !linux

package main

func renderNodes() []renderNode {
	return nil
}
