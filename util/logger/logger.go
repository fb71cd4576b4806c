/*
 * shaderdbg - Wrapper for slog
 *
 * Copyright (c) 2026, shaderdbg contributors.
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package logger adapts log/slog to shaderdbg's stepper: one sink file
// plus an optional stderr echo for interactive runs, gated by a debug
// flag the harness can flip at any point (§7 "Trap"/"Recoverable" both
// log through slog.Default()).
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler that renders records as one space-joined
// line (timestamp, level, message, attrs) to a sink writer, echoing to
// stderr when echoDebug is set or the record is above debug level.
type Handler struct {
	sink      io.Writer
	inner     slog.Handler
	mu        *sync.Mutex
	echoDebug bool
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs), mu: h.mu}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), mu: h.mu}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	line := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			line = append(line, a.Value.String())
			return true
		})
	}
	b := []byte(strings.Join(line, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.sink != nil {
		_, err = h.sink.Write(b)
	}
	if h.echoDebug || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(b)
	}
	return err
}

// SetEchoDebug toggles whether debug-level records also echo to
// stderr; above-debug records always echo regardless.
func (h *Handler) SetEchoDebug(echo *bool) {
	h.echoDebug = *echo
}

// New builds a Handler writing to sink, with echoDebug initialized
// from echo; SetEchoDebug changes it afterwards.
func New(sink io.Writer, opts *slog.HandlerOptions, echo *bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		sink: sink,
		inner: slog.NewTextHandler(sink, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu:        &sync.Mutex{},
		echoDebug: *echo,
	}
}
