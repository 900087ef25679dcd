package main

import (
	"flag"
	"fmt"
	"log"
	"roamalto/config"
	"roamalto/infras/jwt"
	"roamalto/shared/constant"
)

// Mints a staff access token for local testing and operational scripts. The
// identity provider itself stays external; this tool only signs claims with
// the configured secret.
func main() {
	userID := flag.String("user", "", "staff user ID")
	email := flag.String("email", "", "staff email")
	role := flag.String("role", constant.RoleAgent, "staff role (admin or agent)")
	flag.Parse()

	if *userID == "" || *email == "" {
		log.Fatal("both -user and -email are required")
	}

	if *role != constant.RoleAdmin && *role != constant.RoleAgent {
		log.Fatalf("unknown role %q, use %s or %s", *role, constant.RoleAdmin, constant.RoleAgent)
	}

	cfg := config.Get()

	token, err := jwt.New(cfg).GenerateToken(*userID, *email, *role)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Println(token)
}
