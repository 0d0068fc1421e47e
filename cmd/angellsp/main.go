// Command angellsp is a minimal stdio JSON-RPC language server: it lexes,
// parses, hoists, and analyzes whatever the client has open, and answers
// hover, definition, and completion requests from the resulting scope tree.
package main

import (
	"fmt"
	"os"

	"github.com/funvibe/angelscript-front/internal/config"
)

func main() {
	if err := config.Load(config.ConfigFileName); err != nil {
		fmt.Fprintf(os.Stderr, "angellsp: reading %s: %v\n", config.ConfigFileName, err)
	}
	NewLanguageServer(os.Stdout).Start()
}
