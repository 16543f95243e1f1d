package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// ClaimToken signs and verifies the redemption tokens embedded in claim emails.
type ClaimToken struct {
	config *Config
}

func NewClaimToken(config *Config) *ClaimToken {
	return &ClaimToken{config: config}
}

type claimJwt struct {
	jwt.StandardClaims
	CardID string `json:"card_id"`
	Email  string `json:"recipient_email"`
	Exp    int64  `json:"exp"`
}

type ClaimObject struct {
	CardID string `json:"card_id"`
	Email  string `json:"recipient_email"`
}

func (j *ClaimToken) CreateToken(claim ClaimObject) (string, error) {
	claims := claimJwt{
		CardID: claim.CardID,
		Email:  claim.Email,
		Exp:    time.Now().Add(time.Hour * 24 * 30).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.config.SigningKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (j *ClaimToken) VerifyToken(tokenString string) (ClaimObject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claimJwt{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid claim token, format error")
		}
		return []byte(j.config.SigningKey), nil
	})

	if err != nil {
		return ClaimObject{}, fmt.Errorf("invalid claim token, %v", err.Error())
	}

	claims, ok := token.Claims.(*claimJwt)
	if !ok {
		return ClaimObject{}, fmt.Errorf("invalid claim token, token is not OK")
	}

	if claims.Exp < time.Now().Unix() {
		return ClaimObject{}, fmt.Errorf("claim token is expired")
	}

	return ClaimObject{
		CardID: claims.CardID,
		Email:  claims.Email,
	}, nil
}
