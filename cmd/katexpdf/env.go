package main

import (
	"io"
	"os"
	"time"

	katexpdf "github.com/alnah/go-katexpdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...katexpdf.Option) (FileConverter, error)
	LoadDotEnv   func() error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		NewConverter: newConverter,
		LoadDotEnv:   loadDotEnv,
	}
}

func newConverter(opts ...katexpdf.Option) (FileConverter, error) {
	return katexpdf.NewConverter(opts...)
}
