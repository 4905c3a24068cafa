package main

import "github.com/frahmantamala/grievance-management/cmd"

func main() {
	cmd.Execute()
}
