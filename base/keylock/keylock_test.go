package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type KeyLockTestSuite struct {
	suite.Suite
	k *KeyLock
}

func (s *KeyLockTestSuite) SetupTest() {
	s.k = New()
}

func (s *KeyLockTestSuite) TestSerializesSameKey() {
	counter := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := s.k.Lock(context.Background(), "a")
			s.Require().NoError(err)
			defer unlock()
			v := counter
			time.Sleep(100 * time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()
	s.Equal(50, counter)
	s.Equal(0, s.k.Len())
}

func (s *KeyLockTestSuite) TestDifferentKeysDoNotBlock() {
	unlockA, err := s.k.Lock(context.Background(), "a")
	s.Require().NoError(err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := s.k.Lock(ctx, "b")
	s.Require().NoError(err)
	unlockB()
	s.Equal(1, s.k.Len())
}

func (s *KeyLockTestSuite) TestCancelWhileWaiting() {
	unlock, err := s.k.Lock(context.Background(), "a")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.k.Lock(ctx, "a")
	s.ErrorIs(err, context.DeadlineExceeded)

	unlock()
	unlock()
	s.Equal(0, s.k.Len())
}

func TestKeyLockTestSuite(t *testing.T) {
	suite.Run(t, new(KeyLockTestSuite))
}
