package async_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/utils/async"
)

type ctxKey struct{}

func TestDispatch(t *testing.T) {
	t.Run("runs handler with values from parent context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
		done := make(chan string, 1)

		async.Dispatch(ctx, func(ctx context.Context) error {
			<-time.After(10 * time.Millisecond)
			if ctx.Err() != nil {
				done <- "cancelled"
				return nil
			}
			v, _ := ctx.Value(ctxKey{}).(string)
			done <- v
			return nil
		})
		cancel()

		select {
		case got := <-done:
			gt.Value(t, got).Equal("v")
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("survives handler error and panic", func(t *testing.T) {
		done := make(chan struct{}, 2)
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			return goerr.New("failed")
		})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			panic("boom")
		})

		for range 2 {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("handler did not run")
			}
		}
	})
}
