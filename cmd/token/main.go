// Command token signs operator access tokens for the timekeeping API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		admin  bool
		secret string
		ttl    string
	)

	cmd := &cobra.Command{
		Use:   "token <operator-id>",
		Short: "Sign an operator access token",
		Long: `Sign an access token with JWT_SECRET_KEY for the given operator.
Admin tokens may clear attendance and relink virtual identities.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("JWT_SECRET_KEY or --secret is required")
			}
			svc, err := jwt.NewJWTService(secret, ttl)
			if err != nil {
				return err
			}

			token, expiresAt, err := svc.GenerateAccessToken(args[0], admin)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "grant admin privilege")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET_KEY"), "signing secret")
	cmd.Flags().StringVar(&ttl, "ttl", envOr("JWT_ACCESS_EXPIRATION_TIME", "12h"), "token lifetime")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
