// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"bytes"
	"os"

	"github.com/curioswitch/go-build"
	"github.com/goyek/goyek/v2"
	"github.com/goyek/x/boot"
)

const promptFile = "unified_system_prompt.txt"

func main() {
	build.RegisterGenerateTask(goyek.Define(goyek.Task{
		Name:  "format-prompt",
		Usage: "Normalizes whitespace in the shipped system prompt.",
		Action: func(a *goyek.A) {
			path := promptFile
			b, err := os.ReadFile(path)
			if err != nil {
				a.Fatalf("reading %s: %v", promptFile, err)
			}

			lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
			for i, l := range lines {
				lines[i] = bytes.TrimRight(l, " \t\r")
			}
			out := append(bytes.Join(lines, []byte("\n")), '\n')
			if len(bytes.TrimSpace(out)) == 0 {
				a.Fatalf("%s is empty", promptFile)
			}
			if bytes.Equal(out, b) {
				return
			}

			a.Logf("rewriting %s", promptFile)
			if err := os.WriteFile(path, out, 0o644); err != nil { //nolint:gosec // checked-in source file
				a.Fatalf("writing %s: %v", promptFile, err)
			}
		},
	}))

	build.DefineTasks()
	boot.Main()
}
