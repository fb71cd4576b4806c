/*
   shaderdbg/cmd/shaderstep - command dispatch

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/shaderdbg/vm"
)

// cmd is one dispatchable console command. Abbreviations are accepted
// down to min characters, same convention as a debugger shell that
// expects "s" for "step" and "r" to mean "run" once unambiguous.
type cmd struct {
	name    string
	min     int
	process func(args []string, sess *session) (quit bool, err error)
}

var cmdList = []cmd{
	{name: "step", min: 1, process: cmdStep},
	{name: "run", min: 1, process: cmdRun},
	{name: "continue", min: 1, process: cmdRun},
	{name: "regs", min: 1, process: cmdRegs},
	{name: "out", min: 1, process: cmdOut},
	{name: "lane", min: 1, process: cmdLane},
	{name: "break", min: 2, process: cmdBreak},
	{name: "unbreak", min: 3, process: cmdUnbreak},
	{name: "quit", min: 1, process: cmdQuit},
	{name: "exit", min: 2, process: cmdQuit},
	{name: "help", min: 1, process: cmdHelp},
}

// processCommand looks up and runs the command named by the first word
// of commandLine.
func processCommand(commandLine string, sess *session) (bool, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := fields[0], fields[1:]

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, errors.New("command not found: " + name)
	case 1:
		return match[0].process(args, sess)
	default:
		return false, errors.New("ambiguous command: " + name)
	}
}

// completeCommand offers every command name matching the line so far,
// for liner's tab completion.
func completeCommand(commandLine string) []string {
	fields := strings.Fields(commandLine)
	if len(fields) > 1 {
		return nil
	}
	name := ""
	if len(fields) == 1 {
		name = fields[0]
	}
	var out []string
	for _, m := range matchList(name) {
		out = append(out, m.name)
	}
	return out
}

// matchCommand reports whether command is a prefix of match.name at
// least match.min characters long.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	for i := range command {
		if match.name[i] != command[i] {
			return false
		}
	}
	return len(command) >= match.min
}

func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func cmdStep(args []string, sess *session) (bool, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		n = v
	}
	for i := 0; i < n; i++ {
		if sess.allFinished() {
			fmt.Println("all lanes finished")
			break
		}
		sess.step()
		reportStep(sess)
	}
	return false, nil
}

func cmdRun(args []string, sess *session) (bool, error) {
	for !sess.allFinished() {
		sess.step()
		if sess.breaks[sess.current().PC] {
			fmt.Printf("breakpoint hit: pc=%d\n", sess.current().PC)
			return false, nil
		}
	}
	fmt.Println("all lanes finished")
	return false, nil
}

func reportStep(sess *session) {
	st := sess.current()
	fmt.Printf("lane %d: pc=%d done=%v modified=%d\n", sess.lane, st.PC, st.Done, len(st.Modified))
}

func cmdRegs(args []string, sess *session) (bool, error) {
	st := sess.current()
	for i, r := range st.Registers {
		printVariable(fmt.Sprintf("r%d", i), r)
	}
	return false, nil
}

func cmdOut(args []string, sess *session) (bool, error) {
	st := sess.current()
	for i, o := range st.Outputs {
		printVariable(fmt.Sprintf("o%d", i), o)
	}
	return false, nil
}

func printVariable(name string, v vm.ShaderVariable) {
	switch v.Type {
	case vm.TypeFloat:
		fmt.Printf("%s (%s): %g %g %g %g\n", name, v.Type, v.Float(0), v.Float(1), v.Float(2), v.Float(3))
	case vm.TypeSInt:
		fmt.Printf("%s (%s): %d %d %d %d\n", name, v.Type, v.Int(0), v.Int(1), v.Int(2), v.Int(3))
	default:
		fmt.Printf("%s (%s): %d %d %d %d\n", name, v.Type, v.UInt(0), v.UInt(1), v.UInt(2), v.UInt(3))
	}
}

func cmdLane(args []string, sess *session) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("lane requires an index 0-3")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > 3 {
		return false, fmt.Errorf("invalid lane index %q", args[0])
	}
	sess.lane = n
	return false, nil
}

func cmdBreak(args []string, sess *session) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("break requires a program counter")
	}
	pc, err := strconv.Atoi(args[0])
	if err != nil {
		return false, fmt.Errorf("invalid program counter %q", args[0])
	}
	sess.breaks[pc] = true
	return false, nil
}

func cmdUnbreak(args []string, sess *session) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("unbreak requires a program counter")
	}
	pc, err := strconv.Atoi(args[0])
	if err != nil {
		return false, fmt.Errorf("invalid program counter %q", args[0])
	}
	delete(sess.breaks, pc)
	return false, nil
}

func cmdQuit(args []string, sess *session) (bool, error) {
	return true, nil
}

func cmdHelp(args []string, sess *session) (bool, error) {
	fmt.Println("commands: step [n], run, regs, out, lane <0-3>, break <pc>, unbreak <pc>, quit")
	return false, nil
}
