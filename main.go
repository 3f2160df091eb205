package main

import "github.com/sailclub/sailscore/cmd"

func main() {
	cmd.Execute()
}
