package main

import "bingo-watch/internal/cli"

func main() {
	cli.Execute()
}
