package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type localAccount struct {
	passwordHash []byte
	name         string
}

// LocalProvider is an in-process auth provider for development and
// tests. Accounts live in memory, passwords are bcrypt-hashed and
// tokens are self-issued HS256 JWTs.
type LocalProvider struct {
	mu       sync.RWMutex
	accounts map[string]localAccount
	secret   []byte
	tokenTTL time.Duration
}

func NewLocalProvider(secret string) *LocalProvider {
	return &LocalProvider{
		accounts: make(map[string]localAccount),
		secret:   []byte(secret),
		tokenTTL: 2 * time.Hour,
	}
}

func (p *LocalProvider) SignUp(_ context.Context, email, password, name string) error {
	email = strings.ToLower(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[email]; exists {
		return ErrAccountExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.accounts[email] = localAccount{passwordHash: hash, name: name}
	return nil
}

func (p *LocalProvider) SignIn(_ context.Context, email, password string) (Identity, string, error) {
	email = strings.ToLower(email)
	p.mu.RLock()
	account, exists := p.accounts[email]
	p.mu.RUnlock()
	if !exists {
		return Identity{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return Identity{}, "", ErrInvalidCredentials
	}

	claims := &tokenClaims{
		Email: email,
		Name:  account.name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return Identity{}, "", err
	}
	return Identity{Email: email, Name: account.name}, token, nil
}

func (p *LocalProvider) Verify(_ context.Context, token string) (Identity, error) {
	return verifyWithSecret(token, p.secret)
}
