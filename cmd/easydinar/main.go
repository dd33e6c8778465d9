package main

import "github.com/rabie-karouia/EasyDinar/cmd/easydinar/cmd"

func main() {
	cmd.Execute()
}
