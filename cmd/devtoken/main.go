// Command devtoken prints a bearer token accepted by the API when AUTH_MODE=jwt.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/skillswap-backend/internal/auth"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	uid := flag.String("uid", "", "user id (token subject)")
	email := flag.String("email", "", "email claim")
	first := flag.String("first", "", "given name")
	last := flag.String("last", "", "family name")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" || *uid == "" {
		log.Fatal("JWT_SECRET and -uid are required")
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "skillswap"
	}

	tok, err := auth.IssueToken(secret, issuer, auth.Identity{
		UID:       *uid,
		Email:     *email,
		FirstName: *first,
		LastName:  *last,
	}, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(tok)
}
