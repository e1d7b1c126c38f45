package main

import "github.com/sweetdelights/backend/internal/cmd"

func main() {
	cmd.Execute()
}
