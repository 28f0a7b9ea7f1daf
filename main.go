package main

import "locdb/internal/cli"

func main() {
	cli.Execute()
}
