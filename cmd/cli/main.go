package main

import "mealbridge/cmd/cli/command"

func main() {
	command.Execute()
}
