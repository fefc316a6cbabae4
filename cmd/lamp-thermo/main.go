package main

import (
	"lamp/internal/appshell"
	"lamp/internal/thermoapp"
)

func main() { appshell.Main(thermoapp.RunContext) }
