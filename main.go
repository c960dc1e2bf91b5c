package main

import (
	"github.com/axellelanca/cmdvault/cmd"
	_ "github.com/axellelanca/cmdvault/cmd/cli"
	_ "github.com/axellelanca/cmdvault/cmd/server"
)

func main() {
	cmd.Execute()
}
