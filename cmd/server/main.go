package main

import "contesthub/internal/cli"

func main() {
	cli.Execute()
}
