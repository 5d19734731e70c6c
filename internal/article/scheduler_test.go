package article

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRunScheduler(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := newTestService(mockRepo)

	ticks := make(chan error, 16)
	signal := func(err error) func(mock.Arguments) {
		return func(mock.Arguments) {
			select {
			case ticks <- err:
			default:
			}
		}
	}

	dbErr := errors.New("db error")
	mockRepo.On("PublishDue", mock.Anything, fixedNow).
		Return(int64(0), dbErr).Once().Run(signal(dbErr))
	mockRepo.On("PublishDue", mock.Anything, fixedNow).
		Return(int64(2), nil).Run(signal(nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunScheduler(ctx, svc, 5*time.Millisecond)
		close(done)
	}()

	waitTick := func(t *testing.T) error {
		t.Helper()
		select {
		case err := <-ticks:
			return err
		case <-time.After(time.Second):
			t.Fatal("scheduler did not tick")
			return nil
		}
	}

	t.Run("Failed publish does not stop the loop", func(t *testing.T) {
		assert.ErrorIs(t, waitTick(t), dbErr)
		assert.NoError(t, waitTick(t))
	})

	t.Run("Stops on cancel", func(t *testing.T) {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop")
		}
		mockRepo.AssertExpectations(t)
	})
}
