package main

import "github.com/MEME-CORP/calaiweb/cmd/calai"

func main() {
	calai.Execute()
}
