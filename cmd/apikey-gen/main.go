// Command apikey-gen prints the SHA-256 digest of an API key so it can
// be added to TASKHUB_AUTH_API_KEY_DIGESTS. Keys are configured as
// digests; the server never sees plaintext keys at rest.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: apikey-gen <key> [<key> ...]")
		os.Exit(1)
	}

	for _, key := range os.Args[1:] {
		sum := sha256.Sum256([]byte(key))
		fmt.Println(hex.EncodeToString(sum[:]))
	}
}
