package main

import "github.com/itsmostafa/pdfoutline/cmd"

func main() {
	cmd.Execute()
}
