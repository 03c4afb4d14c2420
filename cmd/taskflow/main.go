// Command taskflow is a personal Kanban board for the terminal.
package main

import (
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		failure(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}
