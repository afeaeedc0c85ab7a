package main

import "task-management.com/task-management/cmd"

func main() {
	cmd.Execute()
}
