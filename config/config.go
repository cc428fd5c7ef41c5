// Package config loads pagesim settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvFrames      = "PAGESIM_FRAMES"
	EnvPolicy      = "PAGESIM_POLICY"
	EnvSeed        = "PAGESIM_SEED"
	EnvDB          = "PAGESIM_DB"
	EnvRecord      = "PAGESIM_RECORD"
	EnvMonitorPort = "PAGESIM_MONITOR_PORT"
	EnvLogLevel    = "PAGESIM_LOG_LEVEL"
)

// Config holds the defaults of the command line tool.
type Config struct {
	Frames      int
	Policy      string
	Seed        uint64
	DB          string
	Record      bool
	MonitorPort int
	LogLevel    string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Frames:   3,
		Policy:   "fifo",
		LogLevel: "info",
	}
}

// Load reads the given .env files, or ".env" if none is given, and then
// overrides the defaults with the PAGESIM_* environment variables. Missing
// files are ignored. Variables already present in the environment take
// precedence over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (Config, error) {
	c := Default()

	var err error

	if c.Frames, err = intVar(EnvFrames, c.Frames); err != nil {
		return Config{}, err
	}

	if c.MonitorPort, err = intVar(EnvMonitorPort, c.MonitorPort); err != nil {
		return Config{}, err
	}

	if v, ok := os.LookupEnv(EnvSeed); ok {
		c.Seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, varError(EnvSeed, v, err)
		}
	}

	if v, ok := os.LookupEnv(EnvRecord); ok {
		c.Record, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, varError(EnvRecord, v, err)
		}
	}

	c.Policy = stringVar(EnvPolicy, c.Policy)
	c.DB = stringVar(EnvDB, c.DB)
	c.LogLevel = stringVar(EnvLogLevel, c.LogLevel)

	return c, nil
}

func intVar(name string, fallback int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, varError(name, v, err)
	}

	return n, nil
}

func stringVar(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}

	return fallback
}

func varError(name, value string, err error) error {
	return fmt.Errorf("invalid value %q for %s: %w", value, name, err)
}
