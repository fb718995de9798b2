package main

import "github.com/saadjs/gymbro/cmd/gymbro"

func main() {
	gymbro.Execute()
}
