package main

import (
	"cloneplan/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
