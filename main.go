package main

import "abik/internal/cli"

func main() {
	cli.Execute()
}
