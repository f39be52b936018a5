// todo-agent is the conversational backend of the TODO-List app.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kanosa0101/TODO-List/internal/agent"
)

func main() {
	agent.NewApp("todo-agent").Run()
}
