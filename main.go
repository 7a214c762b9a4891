package main

import "github.com/dukhtravel-jpg/dukh-bot/cmd"

func main() {
	cmd.Execute()
}
