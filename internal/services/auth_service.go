package services

import (
	"crypto/subtle"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"cadastro/internal/models"
)

// CredentialVerifier decides whether a username/password pair may log in.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// AdminCredentials is the single configured account. When PasswordHash is
// set it is a bcrypt hash and Password is ignored.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

func (a AdminCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1

	var passOK bool
	if a.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	}
	return userOK && passOK
}

// HashPassword produces a bcrypt hash suitable for AdminCredentials.PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

type AuthService struct {
	verifier CredentialVerifier
	tokens   *TokenService
	log      *logrus.Logger
}

func NewAuthService(verifier CredentialVerifier, tokens *TokenService, log *logrus.Logger) *AuthService {
	return &AuthService{verifier: verifier, tokens: tokens, log: log}
}

// Login checks the pair and returns a token for it. Every mismatch is the
// same ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*models.LoginResponse, error) {
	if !s.verifier.Verify(username, password) {
		s.log.WithField("username", username).Warn("[auth][login] invalid credentials")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		s.log.WithError(err).WithField("username", username).Error("[auth][login] sign token failed")
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"username": username,
		"exp_in":   s.tokens.TTL().String(),
	}).Info("[auth][login] success")

	return &models.LoginResponse{
		Token: token,
		User:  models.UserInfo{Username: username},
	}, nil
}

// Authenticate resolves a bearer token to its username.
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}
