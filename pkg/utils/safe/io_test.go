package safe_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
	"github.com/secmon-lab/caseflow/pkg/utils/safe"
)

type failingCloser struct{ called bool }

func (c *failingCloser) Close() error {
	c.called = true
	return errors.New("close failed")
}

func TestClose(t *testing.T) {
	ctx := logging.With(context.Background(), logging.Discard())

	c := &failingCloser{}
	safe.Close(ctx, c)
	gt.Bool(t, c.called).True()

	safe.Close(ctx, nil)
}

func TestWrite(t *testing.T) {
	ctx := logging.With(context.Background(), logging.Discard())

	var buf bytes.Buffer
	safe.Write(ctx, &buf, []byte("case report"))
	gt.Value(t, buf.String()).Equal("case report")

	safe.Write(ctx, nil, []byte("ignored"))
}
