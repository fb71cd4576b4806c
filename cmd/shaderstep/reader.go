/*
   shaderdbg/cmd/shaderstep - interactive console loop

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"
)

// ConsoleReader drives an interactive stepping session until the user
// quits or aborts the prompt (Ctrl-D).
func ConsoleReader(sess *session) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return completeCommand(line)
	})

	for {
		command, err := line.Prompt("shaderstep> ")
		if err == nil {
			line.AppendHistory(command)
			quit, cmdErr := processCommand(command, sess)
			if cmdErr != nil {
				fmt.Println("Error: " + cmdErr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}
