package main

import "github.com/m5lapp/divengine/cmd/divengine/cmd"

func main() {
	cmd.Execute()
}
