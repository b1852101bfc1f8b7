package main

import "github.com/chrisVisazure/StereoPipeline/cmd"

func main() {
	cmd.Execute()
}
