// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/snipforge/snipctl/internal/command"
	"github.com/snipforge/snipctl/internal/config"
	mylog "github.com/snipforge/snipctl/internal/log"
	"github.com/snipforge/snipctl/internal/util"
	"github.com/snipforge/snipctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments inserts the configured @set argument bundle for the
// command. With no explicit @set on the command line, @defaults applies.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the
	// preamble and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	// And the next arg might be a root dir.
	rootDir, _ := os.Getwd()
	argStartIdx := 2
	if len(args) > 2 {
		if _, _, err := util.ParseRootDir(args[2]); err == nil {
			rootDir = args[2]
			argStartIdx = 3
		}
	}

	set := "defaults"
	explicit := false
	rest := []string{}
	for _, a := range args[argStartIdx:] {
		if strings.HasPrefix(a, "@") && !explicit {
			set = a[1:]
			explicit = true
			continue
		}
		rest = append(rest, a)
	}

	workingArgs := append(preamble, rootDir) //nolint

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		workingArgs = append(workingArgs, strings.Fields(arg)...)
	}

	workingArgs = append(workingArgs, rest...)

	log.Debugf("set=%s, args=%v", set, workingArgs)
	return workingArgs
}
