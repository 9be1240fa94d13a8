package main

import "github.com/satriajanaka/workforce-management/cmd"

func main() {
	cmd.Execute()
}
