/*
   shaderdbg/cmd/shaderstep - interactive four-lane (quad) shader stepper

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/shaderdbg/util/logger"
	"github.com/rcornwell/shaderdbg/util/trace"
	"github.com/rcornwell/shaderdbg/vm"
	"github.com/rcornwell/shaderdbg/vm/config"
)

// session runs a full 2x2 quad of invocations in lockstep: derivative
// and implicit-derivative sample opcodes (§4.7) need sibling lanes to
// read, so a single-lane stepper can't exercise them. lane selects
// which invocation "regs"/"out" inspect; step/run advance every
// not-yet-Done lane one instruction per tick.
type session struct {
	states []*vm.State
	quad   vm.Quad
	global *vm.Global
	cont   *config.Container
	api    *nullWrapper
	lane   int
	breaks map[int]bool
}

func main() {
	optFixture := getopt.StringLong("fixture", 'f', "", "Fixture file (temps/indexable_temp/group_size/cbuffer declarations)")
	optProgram := getopt.StringLong("program", 'p', "", "Program file (textual instruction listing)")
	optLogFile := getopt.StringLong("log", 'l', "", "Debug trace log file")
	optTraceStep := getopt.BoolLong("trace-step", 's', "Trace every opcode dispatch to the log file")
	optTraceLane := getopt.BoolLong("trace-lane", 'q', "Trace sibling-lane reads (derivatives/implicit derivatives) to the log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(logger.New(os.Stderr, &slog.HandlerOptions{Level: programLevel}, new(bool))))

	if *optLogFile != "" {
		if err := trace.SetLogFile(*optLogFile); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}
	if *optTraceStep {
		vm.DebugMask |= vm.TraceStep
	}
	if *optTraceLane {
		vm.DebugMask |= vm.TraceLane
	}

	if *optProgram == "" {
		slog.Error("a program file is required (-p)")
		os.Exit(1)
	}

	sess, err := newSession(*optFixture, *optProgram)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	ConsoleReader(sess)
}

// newSession loads a fixture (if given) and a program, builds the
// container and initial State, and wires a nullWrapper in place of the
// host-graphics backend (§1 "OUT OF SCOPE").
func newSession(fixturePath, programPath string) (*session, error) {
	fixture := &config.Fixture{}
	if fixturePath != "" {
		f, err := os.Open(fixturePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		fixture, err = config.Parse(f)
		if err != nil {
			return nil, err
		}
	}

	cont := config.NewContainer(fixture)

	p, err := os.Open(programPath)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	program, err := config.ParseProgram(p)
	if err != nil {
		return nil, err
	}
	for _, op := range program {
		cont.AddInstruction(op)
	}

	sess := &session{
		global: vm.NewGlobal(),
		cont:   cont,
		api:    &nullWrapper{},
		breaks: make(map[int]bool),
	}
	for i := 0; i < 4; i++ {
		s := &vm.State{}
		vm.Init(s, cont)
		s.Semantics.QuadIndex = i
		sess.states = append(sess.states, s)
		sess.quad[i] = s
	}
	return sess, nil
}

// current returns the State the "regs"/"out" inspection commands act
// on (selected by "lane").
func (s *session) current() *vm.State { return s.states[s.lane] }

// step advances every lane that hasn't finished one instruction.
func (s *session) step() {
	for _, st := range s.states {
		if vm.Finished(st, s.cont.NumInstructions()) {
			continue
		}
		vm.Step(st, s.global, s.api, s.cont, &s.quad)
	}
}

// allFinished reports whether every lane has stopped.
func (s *session) allFinished() bool {
	for _, st := range s.states {
		if !vm.Finished(st, s.cont.NumInstructions()) {
			return false
		}
	}
	return true
}
