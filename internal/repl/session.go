// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package repl drives a dispatcher from a stream of lines: interactively
// with a prompt, or from script files.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tombee/teemu/internal/builtin"
	"github.com/tombee/teemu/internal/log"
	"github.com/tombee/teemu/pkg/dispatch"
	teemuerrors "github.com/tombee/teemu/pkg/errors"
)

// Config configures a Session.
type Config struct {
	// Prompt is written to Console before each interactive read.
	Prompt string

	// Banner is written to the registry output once, when an interactive
	// session starts. Empty disables it.
	Banner string

	// Interactive enables the prompt and banner.
	Interactive bool

	// Console receives prompts. Defaults to io.Discard.
	Console io.Writer

	// Errors receives handler errors. Defaults to io.Discard.
	Errors io.Writer

	Logger *slog.Logger
}

// Session feeds lines to a dispatcher.
type Session struct {
	dispatcher *dispatch.Dispatcher
	cfg        Config
	logger     *slog.Logger
}

// New creates a session over d.
func New(d *dispatch.Dispatcher, cfg Config) *Session {
	if cfg.Console == nil {
		cfg.Console = io.Discard
	}
	if cfg.Errors == nil {
		cfg.Errors = io.Discard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{dispatcher: d, cfg: cfg, logger: logger}
}

// Run reads lines from in until EOF, the exit command or ctx is done.
// Handler errors are reported to the Errors writer and the session goes on.
// Run returns ctx.Err() as soon as ctx is done, even while waiting for input;
// a line read after cancellation is never dispatched. Read errors from in are
// returned as is. On cancellation the reading goroutine stays blocked on in
// until its next Read returns.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if s.cfg.Interactive && s.cfg.Banner != "" {
		s.dispatcher.Registry().Output().Write(s.cfg.Banner)
	}

	stop := make(chan struct{})
	defer close(stop)
	lines, readErr := readLines(in, stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.cfg.Interactive {
			fmt.Fprint(s.cfg.Console, s.cfg.Prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			s.logger.Debug("session cancelled while waiting for input")
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if s.cfg.Interactive {
					fmt.Fprintln(s.cfg.Console)
				}
				return <-readErr
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Trace(s.logger, "line read", slog.String("line", line))

		err := s.dispatcher.Parse(ctx, line)
		if errors.Is(err, builtin.ErrExit) {
			s.logger.Debug("session ended by exit")
			return nil
		}
		if err != nil {
			s.logger.Debug("line failed", "error", err)
			s.report(err)
		}
	}
}

// readLines scans in on its own goroutine so a blocked Read does not hold up
// cancellation. lines is closed when scanning ends; readErr then carries the
// scanner error, or nil.
func readLines(in io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

// RunScript dispatches every line of a script read from in. Blank lines and
// lines starting with # are skipped. The first handler error stops the script
// and is returned with its location; exit stops it without error.
func (s *Session) RunScript(ctx context.Context, name string, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		log.Trace(s.logger, "script line", slog.String("script", name), slog.Int("line", lineNo))

		err := s.dispatcher.Parse(ctx, line)
		if errors.Is(err, builtin.ErrExit) {
			s.logger.Debug("script ended by exit", "script", name, "line", lineNo)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

func (s *Session) report(err error) {
	fmt.Fprintln(s.cfg.Errors, "Error:", err.Error())

	var userErr teemuerrors.UserVisibleError
	if errors.As(err, &userErr) && userErr.IsUserVisible() {
		if suggestion := userErr.Suggestion(); suggestion != "" {
			fmt.Fprintf(s.cfg.Errors, "Suggestion: %s\n", suggestion)
		}
	}
}
