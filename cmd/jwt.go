package main

import (
	"context"
	"fmt"
	"time"
	"webguard/internal/config"
	"webguard/pkg/domain"
	"webguard/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// signUserToken issues an RS256 token for userID, valid for ttl from now.
func signUserToken(privateKeyPEM string, userID domain.UserID, now time.Time, ttl time.Duration) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("could not parse RSA private key: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("could not sign JWT: %w", err)
	}

	return signed, nil
}

// JWTCommand constructs the 'jwt' subcommand that issues a bearer token for
// the extension. Without --user a new user ID is generated and logged.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates a bearer token for a user of the extension",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			subject, _ := cmd.Flags().GetString("user")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			userID := domain.UserID(uuid.New())
			if subject != "" {
				var err error
				if userID, err = domain.ParseUserID(subject); err != nil {
					logger.Fatal(ctx, "user must be a UUID", zap.String("user", subject), zap.Error(err))
				}
			} else {
				logger.Info(ctx, "generated a new user id", zap.Stringer("userId", userID))
			}

			signed, err := signUserToken(cfg.JWT.PrivateKey, userID, time.Now(), ttl)
			if err != nil {
				logger.Fatal(ctx, "could not issue token", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("user", "", "User ID (UUID) to put in the token subject")
	cmd.Flags().Duration("ttl", 30*24*time.Hour, "Token TTL (e.g., 1h, 720h)")

	return cmd
}
