/*
   shaderdbg/cmd/shaderstep - command dispatch tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package main

import (
	"strings"
	"testing"

	"github.com/rcornwell/shaderdbg/vm"
	"github.com/rcornwell/shaderdbg/vm/config"
)

func TestMatchCommandRespectsMinAbbreviation(t *testing.T) {
	c := cmd{name: "break", min: 2}
	if matchCommand(c, "b") {
		t.Errorf("\"b\" is shorter than min=2, should not match \"break\"")
	}
	if !matchCommand(c, "br") {
		t.Errorf("\"br\" meets min=2, should match \"break\"")
	}
	if matchCommand(c, "breakage") {
		t.Errorf("\"breakage\" is longer than \"break\", should not match")
	}
}

func TestMatchListDisambiguatesOnLongerPrefix(t *testing.T) {
	// "r" is ambiguous between "run" and "regs"; "ru" narrows to "run" alone.
	ambiguous := matchList("r")
	if len(ambiguous) != 2 {
		t.Errorf("expected \"r\" to match both run and regs, got %v", ambiguous)
	}
	narrowed := matchList("ru")
	if len(narrowed) != 1 || narrowed[0].name != "run" {
		t.Errorf("expected exactly [run] for \"ru\", got %v", narrowed)
	}
}

func TestProcessCommandUnknownReturnsError(t *testing.T) {
	sess := &session{breaks: make(map[int]bool)}
	_, err := processCommand("bogus", sess)
	if err == nil {
		t.Fatalf("expected an error for an unrecognized command")
	}
}

func TestProcessCommandEmptyLineIsNoOp(t *testing.T) {
	sess := &session{breaks: make(map[int]bool)}
	quit, err := processCommand("   ", sess)
	if quit || err != nil {
		t.Errorf("a blank line should be a silent no-op, got quit=%v err=%v", quit, err)
	}
}

func TestCmdLaneValidatesRange(t *testing.T) {
	sess := &session{breaks: make(map[int]bool)}
	if _, err := cmdLane([]string{"5"}, sess); err == nil {
		t.Errorf("lane index 5 is out of range, expected an error")
	}
	if _, err := cmdLane([]string{"2"}, sess); err != nil {
		t.Fatalf("lane index 2 should be valid: %v", err)
	}
	if sess.lane != 2 {
		t.Errorf("expected sess.lane=2, got %d", sess.lane)
	}
}

func TestCmdBreakAndUnbreak(t *testing.T) {
	sess := &session{breaks: make(map[int]bool)}
	if _, err := cmdBreak([]string{"10"}, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.breaks[10] {
		t.Fatalf("expected a breakpoint at pc=10")
	}
	if _, err := cmdUnbreak([]string{"10"}, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.breaks[10] {
		t.Fatalf("expected the breakpoint at pc=10 to be cleared")
	}
}

// newTestSession builds a session identical in shape to newSession but
// from in-memory readers, to drive cmdStep/cmdRun without touching the
// filesystem.
func newTestSession(t *testing.T, programText string) *session {
	t.Helper()
	fixture, err := config.Parse(strings.NewReader("temps 1\n"))
	if err != nil {
		t.Fatalf("fixture parse error: %v", err)
	}
	cont := config.NewContainer(fixture)
	program, err := config.ParseProgram(strings.NewReader(programText))
	if err != nil {
		t.Fatalf("program parse error: %v", err)
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
	return sess
}

func TestCmdStepAdvancesAllLanesOnce(t *testing.T) {
	sess := newTestSession(t, "mov r0.x, l(1.0)\nmov r0.y, l(2.0)\nret\n")
	if _, err := cmdStep([]string{"1"}, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, st := range sess.states {
		if st.PC != 1 {
			t.Errorf("lane %d: expected pc=1 after one step, got %d", i, st.PC)
		}
	}
}

func TestCmdRunStopsAtBreakpoint(t *testing.T) {
	sess := newTestSession(t, "mov r0.x, l(1.0)\nmov r0.y, l(2.0)\nret\n")
	sess.breaks[1] = true
	if _, err := cmdRun(nil, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.current().PC != 1 {
		t.Errorf("expected run to stop at the breakpoint pc=1, got %d", sess.current().PC)
	}
}

func TestCmdRunStopsAtCompletion(t *testing.T) {
	sess := newTestSession(t, "mov r0.x, l(1.0)\nret\n")
	if _, err := cmdRun(nil, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.allFinished() {
		t.Errorf("expected every lane to finish after run with no breakpoints")
	}
}
