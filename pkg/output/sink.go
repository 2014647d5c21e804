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

// Package output defines the sink that the registry and dispatcher write
// messages, listings and help text to.
package output

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Sink receives lines of output. Writes are fire-and-forget: the core never
// reads from a sink and ignores delivery failures.
type Sink interface {
	Write(lines ...string)
}

// Func adapts a plain function to the Sink interface.
type Func func(lines ...string)

// Write implements Sink.
func (f Func) Write(lines ...string) {
	f(lines...)
}

// Discard drops everything written to it.
var Discard Sink = Func(func(...string) {})

// Writer writes each line, newline terminated, to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter creates a sink that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements Sink.
func (s *Writer) Write(lines ...string) {
	if len(lines) == 0 {
		return
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(s.w, b.String())
}

// Buffer captures written lines in memory. The host uses it for
// non-interactive execution; tests use it to assert on output.
type Buffer struct {
	mu    sync.Mutex
	lines []string
	calls int
}

// Write implements Sink.
func (b *Buffer) Write(lines ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.lines = append(b.lines, lines...)
}

// Lines returns a copy of every line written so far.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Calls returns how many times Write was called.
func (b *Buffer) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// String returns the captured lines joined by newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Reset discards captured output.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.calls = 0
}

// Multi fans every write out to all of the given sinks, in order. Nil sinks
// are skipped.
func Multi(sinks ...Sink) Sink {
	targets := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			targets = append(targets, s)
		}
	}
	return multi(targets)
}

type multi []Sink

func (m multi) Write(lines ...string) {
	for _, s := range m {
		s.Write(lines...)
	}
}

// Styled renders every line through style before passing it on.
func Styled(next Sink, style lipgloss.Style) Sink {
	return Func(func(lines ...string) {
		styled := make([]string, len(lines))
		for i, line := range lines {
			styled[i] = style.Render(line)
		}
		next.Write(styled...)
	})
}

// Plain strips ANSI escape sequences from every line before passing it on,
// for sinks that are not terminals. Lines made only of escape sequences,
// such as a screen clear, are dropped; a write left with no lines is not
// forwarded.
func Plain(next Sink) Sink {
	return Func(func(lines ...string) {
		plain := make([]string, 0, len(lines))
		for _, line := range lines {
			stripped := ansi.Strip(line)
			if stripped == "" && line != "" {
				continue
			}
			plain = append(plain, stripped)
		}
		if len(plain) > 0 {
			next.Write(plain...)
		}
	})
}
