package main

import "github.com/couchcryptid/storm-alertd/internal/cli"

func main() {
	cli.Execute()
}
