// Command token mints an operator bearer token signed with JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"aesgcm/internal/auth"
	"aesgcm/internal/config"
)

func main() {
	subject := flag.String("sub", "", "token subject")
	roles := flag.String("roles", "User", "comma-separated roles")
	ttl := flag.Duration("ttl", 0, "lifetime, defaults to JWT_EXPIRES_IN")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-sub is required")
		os.Exit(2)
	}
	if *ttl <= 0 {
		*ttl = cfg.JWTTTL
	}

	var rs []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rs = append(rs, r)
		}
	}
	tok, err := auth.Sign(cfg.JWTSecret, *ttl, *subject, rs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
