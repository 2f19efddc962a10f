package main

import "project-admin/cmd"

func main() {
	cmd.Execute()
}
