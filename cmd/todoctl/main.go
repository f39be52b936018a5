package main

import (
	"os"

	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd"
)

func main() {
	command := cmd.NewDefaultTodoCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
