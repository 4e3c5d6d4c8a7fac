// Package main provides a CLI tool for generating session tokens for the
// tenant dashboard. Tokens are signed with the dev key by default and will NOT
// work against a production deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"tenantdash/internal/platform/config"
	"tenantdash/internal/seeder"
	"tenantdash/internal/session"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/secrets"
)

const defaultTokenTTL = time.Hour

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage,omitempty"`
}

type tokenFlags struct {
	userID   *string
	key      *string
	audience *string
	ttl      *time.Duration
	json     *bool
}

func bindTokenFlags(fs *flag.FlagSet, defaultUserID string) tokenFlags {
	return tokenFlags{
		userID:   fs.String("user-id", defaultUserID, "User ID (UUID). Generated if empty."),
		key:      fs.String("key", config.DevJWTSigningKey, "HS256 signing key (must match JWT_SIGNING_KEY)"),
		audience: fs.String("audience", "", "Audience claim (must match JWT_AUDIENCE if set)"),
		ttl:      fs.Duration("ttl", defaultTokenTTL, "Token time-to-live"),
		json:     fs.Bool("json", false, "Output as JSON"),
	}
}

func main() {
	userCmd := flag.NewFlagSet("user", flag.ExitOnError)
	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)
	keyCmd := flag.NewFlagSet("key", flag.ExitOnError)

	userFlags := bindTokenFlags(userCmd, seeder.DemoOwnerID.String())
	userRole := userCmd.String("role", "authenticated", "Platform role claim")
	adminFlags := bindTokenFlags(adminCmd, "")
	keyBytes := keyCmd.Int("bytes", secrets.MinKeyBytes, "Key length in random bytes")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "user":
		_ = userCmd.Parse(os.Args[2:])
		generateToken("user_token", id.Role(*userRole), userFlags)
	case "admin":
		_ = adminCmd.Parse(os.Args[2:])
		generateToken("admin_token", id.RoleService, adminFlags)
	case "key":
		_ = keyCmd.Parse(os.Args[2:])
		generateKey(*keyBytes)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate session tokens for the tenant dashboard

WARNING: Tokens are signed with the dev key unless -key is given.
         Only use for local development and testing.

Usage:
  tokengen <command> [flags]

Commands:
  user      Generate a token scoped to the caller's own tenants
  admin     Generate a service_role token that sees every tenant
  key       Generate a random JWT_SIGNING_KEY

Examples:
  # Token for the seeded demo owner (sees one tenant)
  tokengen user

  # Token for another user with a custom TTL
  tokengen user -user-id "550e8400-e29b-41d4-a716-446655440000" -ttl 10m

  # Privileged token
  tokengen admin

  # Output as JSON
  tokengen admin -json

  # Fresh signing key, then a token signed with it
  export JWT_SIGNING_KEY=$(tokengen key)
  tokengen user -key "$JWT_SIGNING_KEY"

Use "tokengen <command> -h" for more information about a command.`)
}

func generateToken(kind string, role id.Role, f tokenFlags) {
	userID := id.UserID(parseOrGenerateUUID(*f.userID, "user-id"))

	svc := session.NewJWTService(*f.key, *f.audience, *f.ttl)
	token, err := svc.Issue(context.Background(), userID, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	keyType := "custom"
	if *f.key == config.DevJWTSigningKey {
		keyType = "dev"
	}

	if *f.json {
		printJSON(tokenOutput{
			Token:     token,
			Type:      kind,
			ExpiresIn: f.ttl.String(),
			Claims: map[string]any{
				"sub":  userID.String(),
				"role": string(role),
				"aud":  *f.audience,
			},
			Usage: map[string]string{
				"header":      "Authorization: Bearer <token>",
				"signing_key": keyType,
			},
		})
		return
	}

	fmt.Println("Session Token (JWT)")
	fmt.Println("===================")
	fmt.Printf("Signing Key: %s\n", keyType)
	fmt.Printf("Expires In:  %s\n", *f.ttl)
	fmt.Printf("User ID:     %s\n", userID)
	fmt.Printf("Role:        %s\n", role)
	if *f.audience != "" {
		fmt.Printf("Audience:    %s\n", *f.audience)
	}
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/dashboard")
}

func generateKey(n int) {
	key, err := secrets.Generate(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(key)
}

func parseOrGenerateUUID(input, fieldName string) uuid.UUID {
	if input == "" {
		return uuid.New()
	}
	parsed, err := uuid.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s UUID: %s\n", fieldName, input)
		os.Exit(1)
	}
	return parsed
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
