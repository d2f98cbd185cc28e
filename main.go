package main

import "github.com/conformlab/constcheck/cmd"

func main() {
	cmd.Execute()
}
