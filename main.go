package main

import "taskway/internal/app"

func main() {
	app.Run()
}
