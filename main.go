package main

import "github.com/astrafin/statement-engine/cmd"

func main() {
	cmd.Execute()
}
