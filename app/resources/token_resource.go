package resources

import (
	"time"

	"github.com/shashiranjanraj/orderservice/app/services"
)

type Token struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewToken(t *services.Token) Token {
	return Token{Token: t.Token, TokenType: t.TokenType, ExpiresAt: t.ExpiresAt.UTC()}
}
