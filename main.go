package main

import "github.com/anahihull/sd-api-ordenes/cmd"

func main() {
	cmd.Execute()
}
