package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a dashboard user token encodes
type DashboardUserClaims struct {
	InstanceID string            `json:"instance_id,omitempty"`
	IsAdmin    bool              `json:"is_admin,omitempty"`
	Payload    map[string]string `json:"payload,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewDashboardUserToken(
	expiresIn time.Duration,
	userID string,
	instanceID string,
	isAdmin bool,
	payload map[string]string,
	secretKey string,
) (tokenString string, err error) {
	claims := DashboardUserClaims{
		instanceID,
		isAdmin,
		payload,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateDashboardUserToken(tokenString string, secretKey string) (claims *DashboardUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &DashboardUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*DashboardUserClaims)
	valid = valid && token.Valid
	return
}
