package security

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	valid := pngBytes(t)

	mime, err := ValidateImage("avatar.PNG", valid)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     error
	}{
		{"empty", "a.png", nil, ErrImageEmpty},
		{"bad extension", "a.exe", valid, ErrImageExtension},
		{"no extension", "avatar", valid, ErrImageExtension},
		{"spoofed", "a.jpg", valid, ErrImageSpoofed},
		{"webp without marker", "a.webp", []byte("RIFF0000JUNKJUNK"), ErrImageSpoofed},
		{"too large", "a.png", make([]byte, MaxImageSize+1), ErrImageTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateImage(tt.filename, tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***@x.io", MaskEmail("a@x.io"))
}

func TestLoginTrackerWithoutRedis(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	lt := NewLoginTracker(DefaultLoginTrackerConfig(), NewSecurityLogger(zap.New(core), "test", "test"))
	lt.client = func() *goredis.Client { return nil }

	blocked, err := lt.IsBlocked(ctx, "a@b.com", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, blocked)

	_, _, err = lt.RecordFailedAttempt(ctx, "a@b.com", "1.2.3.4", "ua", "req")
	assert.Error(t, err)
	require.Equal(t, 1, logs.FilterMessage(string(EventLoginFailed)).Len())
	assert.Equal(t, "a***@b.com", logs.All()[0].ContextMap()["subject_value"])

	remaining, err := lt.GetRemainingAttempts(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)
	assert.NoError(t, lt.ClearAttempts(ctx, "a@b.com", "1.2.3.4"))
}

func TestAdminActionLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "test", "test")

	sl.LogAdminAction(context.Background(), 1, "approve_alumni", 2, map[string]interface{}{"note": "x"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Contains(t, entry.ContextMap()["details"], "approve_alumni")
}

func TestUploadLimiterWithoutRedis(t *testing.T) {
	ul := NewUploadLimiter(0)
	ul.client = func() *goredis.Client { return nil }

	ok, err := ul.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20, ul.maxPerHour)
}
