package main

import "github.com/josephlewis42/lishp/cmd"

func main() {
	cmd.Execute()
}
