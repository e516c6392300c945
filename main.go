package main

import "github.com/dzjyyds666/serde/cmd"

func main() {
	cmd.Execute()
}
