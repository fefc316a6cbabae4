package main

import (
	"lamp/internal/appshell"
	"lamp/internal/designapp"
)

func main() { appshell.Main(designapp.RunContext) }
