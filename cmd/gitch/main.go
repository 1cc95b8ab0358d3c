package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/noxpardalis/gitch/internal/clierr"
)

func main() {
	if err := createRootCommand().Execute(); err != nil {
		var silent *clierr.SilentError
		if !errors.As(err, &silent) {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(clierr.ExitCodeOf(err))
	}
}
