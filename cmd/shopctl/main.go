package main

import "go-shopkeeper/cmd/shopctl/commands"

func main() {
	commands.Execute()
}
