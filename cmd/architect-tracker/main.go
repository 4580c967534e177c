package main

import "github.com/andrescamacho/architect-tracker/internal/adapters/cli"

func main() {
	cli.Execute()
}
