package pos

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"simba/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomBase36 returns n characters drawn uniformly from [0-9a-z].
func randomBase36(n int) string {
	var b strings.Builder
	limit := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		v, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b.WriteByte(base36[v.Int64()])
	}
	return b.String()
}

// NewTransactionID returns TXN-<base36 millis>-<6 random base36>, upper-cased.
// The millisecond prefix keeps ids sortable by creation time.
func NewTransactionID(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper(fmt.Sprintf("TXN-%s-%s", ts, randomBase36(6)))
}

// ReceiptNumberer issues receipt numbers of the form SA-YYYYMMDD-NNNN.
type ReceiptNumberer interface {
	Next(ctx context.Context, now time.Time) string
}

// RedisReceiptNumberer draws the daily sequence from a Redis counter. When
// Redis is missing or fails it falls back to a random 4-digit suffix.
type RedisReceiptNumberer struct {
	Client *redis.Client
}

func (r *RedisReceiptNumberer) Next(ctx context.Context, now time.Time) string {
	day := now.Format("20060102")
	if r.Client != nil {
		key := utils.ReceiptSeqPrefix + day
		seq, err := r.Client.Incr(ctx, key).Result()
		if err == nil {
			if seq == 1 {
				r.Client.Expire(ctx, key, utils.ReceiptSeqTTL)
			}
			return formatReceipt(day, seq)
		}
		zap.L().Warn("pos: receipt sequence unavailable, using random suffix", zap.Error(err))
	}
	return randomReceipt(day)
}

// RandomReceiptNumberer always uses a random suffix.
type RandomReceiptNumberer struct{}

func (RandomReceiptNumberer) Next(_ context.Context, now time.Time) string {
	return randomReceipt(now.Format("20060102"))
}

func randomReceipt(day string) string {
	v, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(err)
	}
	return formatReceipt(day, v.Int64())
}

func formatReceipt(day string, seq int64) string {
	return fmt.Sprintf("SA-%s-%04d", day, seq%10000)
}
