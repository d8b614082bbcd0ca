package services

import (
	"testing"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
)

func TestLockOrder(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, lockOrder([]string{"B", "A", "B"}))
	assert.Equal(t, []string{"A"}, lockOrder([]string{"A", "A"}))
	assert.Empty(t, lockOrder(nil))
}

func TestAccountLockerSameAccountTwiceDoesNotDeadlock(t *testing.T) {
	l := NewAccountLocker()
	done := make(chan struct{})
	go func() {
		unlock := l.Lock("DE01", "DE01")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("locking the same account twice in one call blocked")
	}
	assert.Zero(t, l.size())
}

func TestAccountLockerExcludesConcurrentHolders(t *testing.T) {
	l := NewAccountLocker()
	counter := 0

	var wg conc.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Go(func() {
			unlock := l.Lock("DE01")
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		})
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Zero(t, l.size())
}

func TestAccountLockerOppositeOrderDoesNotDeadlock(t *testing.T) {
	l := NewAccountLocker()
	done := make(chan struct{})

	go func() {
		var wg conc.WaitGroup
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				wg.Go(func() { l.Lock("DE01", "DE02")() })
			} else {
				wg.Go(func() { l.Lock("DE02", "DE01")() })
			}
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("opposite lock orders deadlocked")
	}
	assert.Zero(t, l.size())
}

func TestAccountLockerIndependentAccounts(t *testing.T) {
	l := NewAccountLocker()
	unlockA := l.Lock("DE01")
	defer unlockA()

	acquired := make(chan struct{})
	go func() {
		l.Lock("DE02")()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("unrelated account was blocked")
	}
}

func TestAccountLockerLockAllWaitsForHolders(t *testing.T) {
	l := NewAccountLocker()
	unlockA := l.Lock("DE01")

	acquired := make(chan struct{})
	go func() {
		release := l.LockAll()
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("LockAll returned while an account was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlockA()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("LockAll did not proceed after the account was released")
	}
}

func TestAccountLockerLockAllBlocksNewHolders(t *testing.T) {
	l := NewAccountLocker()
	release := l.LockAll()

	acquired := make(chan struct{})
	go func() {
		l.Lock("DE01")()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("account lock acquired during LockAll")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("account lock not acquired after LockAll was released")
	}
	assert.Zero(t, l.size())
}
