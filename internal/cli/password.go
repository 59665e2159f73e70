package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword prompts on stderr and reads a password from the terminal
// without echoing it. The password is never logged.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, FormatPrompt(LockIcon+" "+prompt))

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Piped stdin: read one line so the command stays scriptable.
		return readLine(os.Stdin)
	}

	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func readLine(f *os.File) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			if buf[0] != '\r' {
				b.WriteByte(buf[0])
			}
		}
		if err != nil {
			if b.Len() > 0 {
				break
			}
			return "", fmt.Errorf("reading password: %w", err)
		}
	}
	return b.String(), nil
}
