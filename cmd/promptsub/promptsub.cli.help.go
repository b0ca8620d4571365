package main

import (
	"fmt"
	"io"
)

func runHelp(args []string, stdout io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stdout, FmtUnknownCommand, args[0])
	}
	fmt.Fprint(stdout, HelpMainUsage)
	return ExitCodeSuccess
}
