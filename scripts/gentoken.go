package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mints a link token for local testing:
//
//	go run scripts/gentoken.go -pid 1001 -secret dev-secret
func main() {
	pid := flag.String("pid", "", "profile id (decimal string)")
	tid := flag.String("tid", "", "tenant id (optional)")
	secret := flag.String("secret", os.Getenv("LINK_TOKEN_SECRET"), "signing secret")
	ttl := flag.Duration("ttl", 7*24*time.Hour, "token lifetime")
	flag.Parse()

	if *pid == "" || *secret == "" {
		fmt.Fprintln(os.Stderr, "usage: gentoken -pid <id> [-tid <id>] -secret <secret>")
		os.Exit(1)
	}

	claims := jwt.MapClaims{
		"pid": *pid,
		"exp": time.Now().Add(*ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if *tid != "" {
		claims["tid"] = *tid
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
