package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const RoleOperator = "operator"

// NewToken issues an operator session token once the restock key has been checked.
func NewToken(operator string, jwtSecret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = operator
	claims["role"] = RoleOperator
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string, secret string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if claims["role"] != RoleOperator {
			return nil, fmt.Errorf("token role %v is not %s", claims["role"], RoleOperator)
		}
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
