// This file is part of the program "glversion".
// Please see the LICENSE file for copyright information.

package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type config struct {
	Display     string
	Screen      int
	Direct      bool
	CoreProfile bool
	Backend     string
	Floor       string
	Versions    []string
}

const configFile = "config.toml"

const (
	backendGLX  = "glx"
	backendGLFW = "glfw"
)

// defaultConfig is the behavior when there is no config file and no flags:
// default display, screen 0, direct rendering, core profile probe.
func defaultConfig() config {
	versions := make([]string, len(knownVersions))
	for i, v := range knownVersions {
		versions[i] = v.String()
	}
	return config{
		Display:     "",
		Screen:      0,
		Direct:      true,
		CoreProfile: true,
		Backend:     backendGLX,
		Floor:       defaultFloor.String(),
		Versions:    versions,
	}
}

// readConfig overlays the config file at path on the defaults. A missing
// file is not an error; nothing is ever written back.
func readConfig(path string) (*config, error) {
	conf := defaultConfig()
	ok, err := exists(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't check if config file exists: %w", err)
	}
	if !ok {
		log.Printf("No config file at '%s', using defaults\n", path)
		return &conf, nil
	}
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config file: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("Ignoring unknown config key '%s' in %s\n", key, path)
	}
	log.Printf("Read config from '%s'\n", path)
	return &conf, nil
}

func writeConfig(w io.Writer, conf *config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	_, err := w.Write(buffer.Bytes())
	return err
}

// probeOptions validates conf and turns it into what the probe consumes.
func (conf *config) probeOptions() (probeOptions, error) {
	switch conf.Backend {
	case backendGLX, backendGLFW:
	default:
		return probeOptions{}, fmt.Errorf("unknown backend %q", conf.Backend)
	}
	if conf.Screen < 0 {
		return probeOptions{}, fmt.Errorf("invalid screen %d", conf.Screen)
	}
	floor, err := parseGLVersion(conf.Floor)
	if err != nil {
		return probeOptions{}, fmt.Errorf("config Floor: %w", err)
	}
	versions, err := parseVersionList(conf.Versions)
	if err != nil {
		return probeOptions{}, fmt.Errorf("config Versions: %w", err)
	}
	return probeOptions{
		screen:      conf.Screen,
		direct:      conf.Direct,
		coreProfile: conf.CoreProfile,
		versions:    versions,
		floor:       floor,
	}, nil
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), configFile)
}

func configDir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "glversion")
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			log.Printf("Resolved $%s to '%s'\n", xdg, dir)
			return dir
		}

	}

	log.Printf("Couldn't resolve $%s falling back to '%s'\n", xdg, fallback)
	return fallback
}
