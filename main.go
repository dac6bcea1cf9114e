package main

import "golang-ifrename/cmd"

func main() {
	cmd.Execute()
}
