package main

// Exit codes
const (
	ExitSuccess   = 0 // Success
	ExitError     = 1 // General error (invalid arguments, i/o failure)
	ExitNoChange  = 2 // Key not found, index out of range or key already exists
	ExitDataError = 3 // Store file can't be decoded
)
