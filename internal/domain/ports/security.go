package ports

import "time"

// PasswordHasher abstrai o hash de senhas
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer emite e valida tokens de acesso
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Parse(token string) (userID string, err error)
}

// Clock permite controlar o tempo nos testes
type Clock interface {
	Now() time.Time
}

// SystemClock usa o relógio do sistema (UTC)
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
