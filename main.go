package main

import "github.com/wsyqhh/Accessibility-Service/cmd"

func main() {
	cmd.Execute()
}
