/*
   shaderdbg - Log debug data to a file

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package trace

import (
	"fmt"
	"os"
	"strconv"
)

var logFile *os.File

// SetLogFile opens (creating/truncating) the file debug traces are
// written to. Call once during harness startup before stepping.
func SetLogFile(fileName string) error {
	if logFile != nil {
		return fmt.Errorf("debug log already open: %s", logFile.Name())
	}
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}
	logFile = file
	return nil
}

// Debugf logs a generic bitmask-gated trace message.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if logFile == nil || (mask&level) == 0 {
		return
	}
	fmt.Fprintf(logFile, module+": "+format+"\n", a...)
}

// DebugStepf traces one opcode dispatch, tagged with the program
// counter that produced it.
func DebugStepf(pc int, mask int, level int, format string, a ...interface{}) {
	if logFile == nil || (mask&level) == 0 {
		return
	}
	fmt.Fprintf(logFile, "pc="+strconv.Itoa(pc)+": "+format+"\n", a...)
}

// DebugLanef traces a quad-lane-scoped event (derivative or implicit-
// derivative sample evaluation reading a sibling's State).
func DebugLanef(quadIndex int, mask int, level int, format string, a ...interface{}) {
	if logFile == nil || (mask&level) == 0 {
		return
	}
	lane := strconv.Itoa(quadIndex)
	fmt.Fprintf(logFile, "lane "+lane+": "+format+"\n", a...)
}
