package main

import "github.com/nfrund/goby-auth/cmd/server/cmd"

func main() {
	cmd.Execute()
}
