package auth

import "storefront/internal/domain/roles"

type Authenticator interface {
	GenerateTokens(userID int64, role roles.Role) (access, refresh string, err error)
	ParseAccessToken(token string) (*Claims, error)
	ParseRefreshToken(token string) (*Claims, error)
}
