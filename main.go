package main

import "github.com/alexiusacademia/gosfrc/cmd"

func main() {
	cmd.Execute()
}
