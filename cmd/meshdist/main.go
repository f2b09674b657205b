package main

import "github.com/arl/meshdist/cmd/meshdist/cmd"

func main() {
	cmd.Execute()
}
