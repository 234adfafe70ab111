// Command keyhash generates the bcrypt hash of an API key for the
// VOCABVAL_SYNC_API_KEY_HASH setting. The key is read from the first
// argument, or from stdin when no argument is given.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	key, err := readKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyhash: %v\n", err)
		os.Exit(1)
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "keyhash: empty key")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyhash: generating hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}

func readKey() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading key from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
