// Package xmain runs a command: it wires the environment, logger and flags
// into a State, handles interrupts and turns the returned error into an exit
// status.
package xmain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"
)

// StdioPath stands for stdin as an input and stdout as an output.
const StdioPath = "-"

// shutdownGrace bounds how long run may take to return after an interrupt.
const shutdownGrace = 10 * time.Second

type RunFunc func(context.Context, *State) error

type State struct {
	Name string

	Stdin  io.Reader
	Stdout io.WriteCloser

	Log  *cmdlog.Logger
	Env  *xos.Env
	Opts *Opts
}

func Main(run RunFunc) {
	var name string
	var args []string
	if len(os.Args) > 0 {
		name, args = os.Args[0], os.Args[1:]
	}

	env := xos.NewEnv(os.Environ())
	l := cmdlog.Log(env, os.Stderr)
	ms := &State{
		Name:   name,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Log:    l,
		Env:    env,
		Opts:   NewOpts(env, l, args),
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	code, msg := exitStatus(ms.Main(context.Background(), sigs, run))
	if msg != "" {
		ms.Log.Error.Print(msg)
	}
	if code != 0 {
		os.Exit(code)
	}
}

// exitStatus maps the error run returned to a process exit code and the
// message to print for it.
func exitStatus(err error) (int, string) {
	if err == nil {
		return 0, ""
	}
	var eerr ExitError
	if errors.As(err, &eerr) {
		return eerr.Code, eerr.Message
	}
	var uerr UsageError
	if errors.As(err, &uerr) {
		return 1, err.Error() + "\nRun with --help to see usage."
	}
	return 1, err.Error()
}

// Main calls run and cancels its context on the first signal. SIGTERM with a
// clean return exits 0; an interrupt always exits 1.
func (ms *State) Main(ctx context.Context, sigs <-chan os.Signal, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, ms)
	}()

	var sig os.Signal
	select {
	case err := <-done:
		return err
	case sig = <-sigs:
	}

	ms.Log.Warn.Printf("received %v: stopping...", sig)
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to stop: %w", err)
		}
		if sig == syscall.SIGTERM {
			return nil
		}
		return ExitError{Code: 1}
	case <-time.After(shutdownGrace):
		return ExitError{
			Code:    1,
			Message: fmt.Sprintf("did not stop within %v: exiting forcefully", shutdownGrace),
		}
	}
}

type ExitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (ee ExitError) Error() string {
	if ee.Message == "" {
		return fmt.Sprintf("exiting with code %d", ee.Code)
	}
	return fmt.Sprintf("exiting with code %d: %s", ee.Code, ee.Message)
}

type UsageError struct {
	Message string `json:"message"`
}

func UsageErrorf(msg string, v ...interface{}) UsageError {
	return UsageError{
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ue UsageError) Error() string {
	return "bad usage: " + ue.Message
}

func IsStdio(fp string) bool {
	return fp == StdioPath
}

// IOPaths resolves the positional arguments of a command that reads one file
// and writes one. A missing output means stdout.
func IOPaths(args []string) (input, output string, err error) {
	switch len(args) {
	case 1:
		return args[0], StdioPath, nil
	case 2:
		return args[0], args[1], nil
	case 0:
		return "", "", UsageErrorf("missing input file")
	}
	return "", "", UsageErrorf("expected an input and an optional output, got %d arguments", len(args))
}

func (ms *State) ReadPath(fp string) ([]byte, error) {
	var b []byte
	var err error
	if IsStdio(fp) {
		b, err = io.ReadAll(ms.Stdin)
	} else {
		b, err = os.ReadFile(fp)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", displayPath(fp), err)
	}
	return b, nil
}

// WritePath writes p to fp. Stdout is closed afterwards so a broken pipe
// surfaces as an error here.
func (ms *State) WritePath(fp string, p []byte) error {
	if !IsStdio(fp) {
		err := os.WriteFile(fp, p, 0644)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", fp, err)
		}
		return nil
	}
	_, err := ms.Stdout.Write(p)
	if err == nil {
		err = ms.Stdout.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to write stdout: %w", err)
	}
	return nil
}

// WriteJSON writes v to fp as indented JSON ending in a newline.
func (ms *State) WriteJSON(fp string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return ms.WritePath(fp, append(b, '\n'))
}

func displayPath(fp string) string {
	if IsStdio(fp) {
		return "stdin"
	}
	return fp
}
