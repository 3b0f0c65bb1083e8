// Package config resolves the inputs of a single minigrep run.
//
// Build turns positional arguments plus an injected environment lookup into a
// validated Config. The package never reads process state on its own: callers
// pass OSLookup at the boundary and MapLookup in tests.
package config

import (
	"errors"
	"os"
)

// IgnoreCaseEnv is the environment toggle that forces case-insensitive search.
// Only its presence matters, not its value.
const IgnoreCaseEnv = "IGNORE_CASE"

// ErrMissingArgument is returned by Build when the query or file path is absent.
var ErrMissingArgument = errors.New("not enough arguments")

// LookupFunc reports the value of an environment-style key and whether it is set.
// It has the same shape as os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Config holds the resolved inputs of one search run.
// It is never modified after Build returns it.
type Config struct {
	// Query is the substring to search for. Empty matches every line.
	Query string

	// FilePath is the file to search. It is not checked until the file is read.
	FilePath string

	// CaseSensitive selects exact comparison; false lowercases both sides first.
	CaseSensitive bool
}

// Build creates a Config from an argument list and an environment lookup.
// args[0] is the invocation token and is ignored, args[1] is the query and
// args[2] the file path. Any further arguments are ignored.
// A nil lookup behaves like an empty environment.
func Build(args []string, lookup LookupFunc) (*Config, error) {
	if len(args) < 3 {
		return nil, ErrMissingArgument
	}

	return &Config{
		Query:         args[1],
		FilePath:      args[2],
		CaseSensitive: !isSet(lookup, IgnoreCaseEnv),
	}, nil
}

func isSet(lookup LookupFunc, key string) bool {
	if lookup == nil {
		return false
	}
	_, ok := lookup(key)
	return ok
}

// OSLookup reads the real process environment.
func OSLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapLookup returns a LookupFunc backed by a fixed map.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// WithIgnoreCase layers a forced ignore-case toggle over lookup.
// When force is true, IgnoreCaseEnv is reported as set; every other key
// (and IgnoreCaseEnv when force is false) is answered by lookup.
func WithIgnoreCase(lookup LookupFunc, force bool) LookupFunc {
	return func(key string) (string, bool) {
		if force && key == IgnoreCaseEnv {
			return "1", true
		}
		if lookup == nil {
			return "", false
		}
		return lookup(key)
	}
}
