package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "mySecurePassword123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		hash1, _ := HashPassword("samePassword")
		hash2, _ := HashPassword("samePassword")

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	hashed, _ := HashPassword("correctPassword")

	assert.True(t, CheckPassword(hashed, "correctPassword"))
	assert.False(t, CheckPassword(hashed, "wrongPassword"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFor(true))
	assert.Equal(t, RoleUser, RoleFor(false))
}

func TestGenerateSessionToken(t *testing.T) {
	t.Run("Admin session", func(t *testing.T) {
		token, err := GenerateSessionToken(1, "admin@example.com", true, testSecret, time.Hour)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.True(t, claims.IsAdmin)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.Equal(t, jwtIssuer, claims.Issuer)
		assert.Contains(t, claims.Audience, jwtAudience)
	})

	t.Run("Empty secret", func(t *testing.T) {
		_, err := GenerateSessionToken(1, "user@example.com", false, "", time.Hour)
		assert.Equal(t, ErrEmptyJWTSecret, err)
	})

	t.Run("Zero ttl falls back to default", func(t *testing.T) {
		token, err := GenerateSessionToken(2, "user@example.com", false, testSecret, 0)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		diff := claims.ExpiresAt.Time.Sub(time.Now().Add(DefaultSessionTTL)).Abs()
		assert.Less(t, diff, 2*time.Second)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Wrong secret", func(t *testing.T) {
		token, _ := GenerateSessionToken(100, "test@example.com", false, testSecret, time.Hour)

		claims, err := ValidateToken(token, "wrong-secret")
		assert.Equal(t, ErrInvalidToken, err)
		assert.Nil(t, claims)
	})

	t.Run("Empty secret", func(t *testing.T) {
		token, _ := GenerateSessionToken(100, "test@example.com", false, testSecret, time.Hour)

		_, err := ValidateToken(token, "")
		assert.Equal(t, ErrEmptyJWTSecret, err)
	})

	t.Run("Garbage token", func(t *testing.T) {
		claims, err := ValidateToken("invalid.token.format", testSecret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired token", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		claims := &Claims{
			UserID: 100,
			Email:  "test@example.com",
			Role:   RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(past),
				IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			},
		}
		tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

		validated, err := ValidateToken(tokenString, testSecret)
		assert.Equal(t, ErrTokenExpired, err)
		assert.Nil(t, validated)
	})

	t.Run("Foreign audience", func(t *testing.T) {
		claims := &Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{"someone-else"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

		_, err := ValidateToken(tokenString, testSecret)
		assert.Equal(t, ErrInvalidToken, err)
	})
}
