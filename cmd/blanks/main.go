package main

import "github.com/aalvaropc/blanks/internal/cli"

func main() {
	cli.Execute()
}
