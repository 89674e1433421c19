package main

import "github.com/petrarca/loctree/internal/cmd"

func main() {
	cmd.Execute()
}
