// Package auth issues and verifies family invite credentials: a signed
// token that identifies the invite, and a short share code the inviter
// reads out to the invitee.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"babysteps/internal/common"
)

// InviteClaims embeds the registered claims plus the invite the token grants
// access to.
type InviteClaims struct {
	jwt.RegisteredClaims
	InviteID string
}

func GenerateInviteToken(inviteID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, InviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		InviteID: inviteID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetInviteIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &InviteClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", common.ErrInviteExpired
	}
	if err != nil {
		return "", common.ErrInvalidInvite
	}

	if !token.Valid {
		return "", common.ErrInvalidInvite
	}

	return claims.InviteID, nil
}

const shareCodeDigits = 6

// NewShareCode returns a zero-padded numeric code of shareCodeDigits digits.
func NewShareCode() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

func HashShareCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyShareCode(hash string, code string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return common.ErrInvalidInvite
	}
	return nil
}
