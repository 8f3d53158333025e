package main

import "github.com/pez-cli/pez/cmd"

func main() {
	cmd.Execute()
}
