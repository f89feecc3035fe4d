package main

import "github.com/mcoot/tilescore/internal/cli"

func main() {
	cli.Execute()
}
