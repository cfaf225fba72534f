package main

import "valortracker/cmd"

func main() {
	cmd.Execute()
}
