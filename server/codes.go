package main

const version = "0.1.0"

// process exit codes
const (
	successCode = iota
	configPathErr
	configLoadErr
	configGetErr
	loggerErr
	pakasirErr
	serverErr
)
