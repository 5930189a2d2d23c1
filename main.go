package main

import "github.com/Rizky28eka/portfolio/cmd"

func main() {
	cmd.Execute()
}
