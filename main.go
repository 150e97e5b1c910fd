package main

import "github.com/Danieliragi/johnserviceMotel-sub001/cmd"

func main() {
	cmd.Execute()
}
