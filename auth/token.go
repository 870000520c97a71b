package auth

import (
	"fmt"
	"time"

	"github.com/vanbenpham/forunime-backend/config"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/golang-jwt/jwt/v5"
)

// CreateToken issues a signed bearer token for the user. The payload carries
// a few profile fields so clients can render the current user without an
// extra round-trip.
func CreateToken(user *models.User) (string, error) {
	expire := time.Now().Add(time.Duration(config.TOKEN_EXPIRY_MINUTES) * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":             user.ID,
		"email":               user.Email,
		"username":            user.Username,
		"profile_picture_url": user.ProfilePictureURL,
		"exp":                 expire.Unix(),
	})
	return token.SignedString([]byte(config.TOKEN_SECRET))
}

// VerifyToken checks the signature and expiry and returns the user id.
func VerifyToken(tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.TOKEN_SECRET), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("invalid token payload")
	}
	return uint64(id), nil
}
