package main

import (
	"github.com/wlkit/lswt/cmd/lswt/commands"
)

func main() {
	commands.Execute()
}
