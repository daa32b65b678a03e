package main

import "github.com/DrSkyle/wikipath/cmd/wikipath/commands"

func main() {
	commands.Execute()
}
