package main

import "kanbanwatch/cmd/kanbanwatch-cli/cmd"

func main() {
	cmd.Execute()
}
