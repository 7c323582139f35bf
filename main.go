package main

import "github.com/user/scout/cmd"

func main() {
	cmd.Execute()
}
