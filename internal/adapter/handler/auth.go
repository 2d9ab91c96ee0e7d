package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey struct{}

// BearerAuth accepts HS256 tokens signed with secret and exposes their subject as the buyer id.
func BearerAuth(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHORIZED", Error: "missing token"})
				return
			}

			buyerID, err := buyerFromToken(parser, strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHORIZED", Error: "invalid token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, buyerID)))
		})
	}
}

func buyerFromToken(parser *jwt.Parser, tokenStr string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("subject is not a buyer id")
	}

	return claims.Subject, nil
}

// BuyerID returns the authenticated buyer of the request, or "" outside BearerAuth.
func BuyerID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
