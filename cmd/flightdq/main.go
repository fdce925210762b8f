package main

import "github.com/dbsmedya/flightdq/cmd/flightdq/cmd"

func main() {
	cmd.Execute()
}
