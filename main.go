package main

import "chatbot/internal/cmd"

func main() {
	cmd.Execute()
}
