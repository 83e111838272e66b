package main

import "github.com/studyhub/studyhub/backend/go-services/cmd"

func main() {
	cmd.Execute()
}
