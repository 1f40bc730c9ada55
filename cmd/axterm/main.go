package main

import "github.com/kcaldas/axterm/cmd/cli"

func main() {
	cli.Execute()
}
