package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated 256-bit cookie encryption key\n")
	fmt.Printf("\nAdd to your .env file:\n")
	fmt.Printf("SECRET_KEY=%s\n", hex.EncodeToString(key))
}
