package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("生成并解析AccessToken", func(t *testing.T) {
		pair, err := m.GenerateToken(42, "admin", "管理员")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, int64(3600), pair.ExpiresIn)

		claims, err := m.ParseToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "管理员", claims.Name)
	})

	t.Run("过期Token返回过期错误", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute, 24*time.Hour)
		pair, err := expired.GenerateToken(1, "admin", "管理员")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTokenExpired), "应识别为过期而非无效")
	})

	t.Run("密钥不匹配返回无效错误", func(t *testing.T) {
		other := NewManager("another-secret", time.Hour, 24*time.Hour)
		pair, err := other.GenerateToken(1, "admin", "管理员")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken))
	})

	t.Run("伪造字符串返回无效错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken))
	})
}

func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("用RefreshToken换新AccessToken", func(t *testing.T) {
		pair, err := m.GenerateToken(7, "kasir", "Kasir Toko")
		require.NoError(t, err)

		newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, newAccess)

		claims, err := m.ParseToken(newAccess)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("过期RefreshToken拒绝刷新", func(t *testing.T) {
		expired := NewManager("test-secret", time.Hour, -time.Minute)
		pair, err := expired.GenerateToken(7, "kasir", "Kasir Toko")
		require.NoError(t, err)

		_, err = m.RefreshAccessToken(pair.RefreshToken)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTokenExpired))
	})
}
