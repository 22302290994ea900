package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"commerce/domain/order"
	"commerce/domain/product"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig

	t.Run("nil error is not retryable", func(t *testing.T) {
		assert.False(t, IsRetryableError(nil, cfg))
	})

	t.Run("optimistic lock conflicts are retryable", func(t *testing.T) {
		assert.True(t, IsRetryableError(order.NewConcurrentModificationError("order-1"), cfg))
		assert.True(t, IsRetryableError(product.NewConcurrentModificationError("prod-1"), cfg))
	})

	t.Run("deadlock and lock wait timeout follow their flags", func(t *testing.T) {
		deadlock := &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
		lockWait := &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}

		assert.True(t, IsRetryableError(deadlock, cfg))
		assert.True(t, IsRetryableError(lockWait, cfg))

		disabled := cfg
		disabled.RetryOnDeadlock = false
		disabled.RetryOnLockTimeout = false
		assert.False(t, IsRetryableError(deadlock, disabled))
		assert.False(t, IsRetryableError(lockWait, disabled))
	})

	t.Run("duplicate key is never retryable", func(t *testing.T) {
		assert.False(t, IsRetryableError(gorm.ErrDuplicatedKey, cfg))
	})

	t.Run("unknown errors are not retryable", func(t *testing.T) {
		assert.False(t, IsRetryableError(errors.New("boom"), cfg))
	})

	t.Run("custom predicate extends the policy", func(t *testing.T) {
		custom := cfg
		custom.RetryPredicate = func(err error) bool {
			return err.Error() == "flaky"
		}
		assert.True(t, IsRetryableError(errors.New("flaky"), custom))
	})
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: false,
	}

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 400*time.Millisecond, ExponentialBackoffWithJitter(3, cfg))

	// Delay is capped at MaxDelay.
	assert.Equal(t, 2*time.Second, ExponentialBackoffWithJitter(10, cfg))

	// Jitter keeps the delay within 80% to 120% of the base.
	cfg.JitterEnabled = true
	for i := 0; i < 20; i++ {
		d := ExponentialBackoffWithJitter(2, cfg)
		assert.GreaterOrEqual(t, d, 160*time.Millisecond)
		assert.LessOrEqual(t, d, 240*time.Millisecond)
	}
}

func TestExecuteWithRetry(t *testing.T) {
	fastConfig := Config{
		Enabled:                       true,
		MaxAttempts:                   3,
		InitialDelay:                  time.Millisecond,
		MaxDelay:                      2 * time.Millisecond,
		BackoffFactor:                 2.0,
		RetryOnConcurrentModification: true,
		RetryOnDeadlock:               true,
		RetryOnLockTimeout:            true,
	}

	t.Run("succeeds after transient conflicts", func(t *testing.T) {
		attempts := 0
		err := ExecuteWithRetry(context.Background(), fastConfig, func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return order.NewConcurrentModificationError("order-1")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		err := ExecuteWithRetry(context.Background(), fastConfig, func(ctx context.Context) error {
			attempts++
			return order.NewConcurrentModificationError("order-1")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrConcurrentModification)
		assert.Equal(t, 3, attempts)
	})

	t.Run("non-retryable errors fail fast", func(t *testing.T) {
		attempts := 0
		boom := errors.New("boom")
		err := ExecuteWithRetry(context.Background(), fastConfig, func(ctx context.Context) error {
			attempts++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, attempts)
	})

	t.Run("disabled policy runs fn once", func(t *testing.T) {
		disabled := fastConfig
		disabled.Enabled = false
		attempts := 0
		err := ExecuteWithRetry(context.Background(), disabled, func(ctx context.Context) error {
			attempts++
			return order.NewConcurrentModificationError("order-1")
		})
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := ExecuteWithRetry(ctx, fastConfig, func(ctx context.Context) error {
			attempts++
			cancel()
			return order.NewConcurrentModificationError("order-1")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}
