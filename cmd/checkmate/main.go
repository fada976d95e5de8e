package main

import (
	"errors"
	"fmt"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch CI containers
)

// issuesFoundError indicates the run completed and found compliance issues.
// The count becomes the process exit code, so callers can distinguish "clean"
// from "N checks flagged" without parsing output.
type issuesFoundError struct {
	Count int
}

func (e *issuesFoundError) Error() string {
	return fmt.Sprintf("%d errors found", e.Count)
}

func main() {
	if err := execute(); err != nil {
		var issues *issuesFoundError
		if errors.As(err, &issues) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(issues.Count)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
