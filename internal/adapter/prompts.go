package adapter

import _ "embed"

// SystemInstruction is sent with every request and directs the model to answer
// with the etymology JSON object only.
//
//go:embed prompts/system.md
var SystemInstruction string
