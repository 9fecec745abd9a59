// Package lock serialises bill saves that share a number sequence
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sirupsen/logrus"
)

// ErrNotObtained is returned when the lock stayed busy past the wait budget
var ErrNotObtained = errors.New("lock: not obtained")

// Locker hands out exclusive locks by key
type Locker interface {
	// Acquire blocks until the key is held or ctx is done. The returned
	// function releases the lock and is safe to call once.
	Acquire(ctx context.Context, key string) (func(), error)
}

// BillSequenceKey is the lock key shared by all saves that number bills of
// one type on one day.
func BillSequenceKey(billType enum.BillType, day time.Time) string {
	return fmt.Sprintf("lock:bill-number:%s:%s", billType, day.Format("20060102"))
}

type localSlot struct {
	ch   chan struct{}
	refs int
}

type localLocker struct {
	mu    sync.Mutex
	slots map[string]*localSlot
}

// NewLocalLocker returns an in-process Locker. A key's slot is dropped once
// nobody holds or waits for it.
func NewLocalLocker() Locker {
	return &localLocker{slots: make(map[string]*localSlot)}
}

func (l *localLocker) join(key string) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl, ok := l.slots[key]
	if !ok {
		sl = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = sl
	}
	sl.refs++
	return sl
}

func (l *localLocker) leave(key string, sl *localSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl.refs--
	if sl.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *localLocker) Acquire(ctx context.Context, key string) (func(), error) {
	sl := l.join(key)
	select {
	case sl.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-sl.ch
				l.leave(key, sl)
			})
		}, nil
	case <-ctx.Done():
		l.leave(key, sl)
		return nil, fmt.Errorf("%w: %v", ErrNotObtained, ctx.Err())
	}
}

type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	opts   *redislock.Options
	logger logrus.FieldLogger
}

// NewRedisLocker returns a Locker shared by every process using the same
// redis. Locks expire after ttl if the holder dies.
func NewRedisLocker(client *redislock.Client, ttl time.Duration, logger logrus.FieldLogger) Locker {
	return &redisLocker{
		client: client,
		ttl:    ttl,
		opts: &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 100),
		},
		logger: logger,
	}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, l.opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := lk.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				l.logger.WithFields(logrus.Fields{"key": key}).Warn("failed to release lock: " + err.Error())
			}
		})
	}, nil
}
