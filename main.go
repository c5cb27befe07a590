package main

import "github.com/ItamarSasson/queens-game-backend/cmd"

func main() {
	cmd.Execute()
}
