package main

import "github.com/dinesafe/dinesafe/cmd"

func main() {
	cmd.Execute()
}
