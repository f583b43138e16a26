package main

import "github.com/tessro/gifly/internal/cli"

func main() {
	cli.Execute()
}
