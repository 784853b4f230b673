package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/cli/config"
)

func TestSlackConfigure(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		notifier, err := config.NewSlackForTest("", "").Configure("")
		gt.NoError(t, err)
		gt.Value(t, notifier).Nil()
	})

	t.Run("token without channel", func(t *testing.T) {
		_, err := config.NewSlackForTest("xoxb-test", "").Configure("")
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("channel without token", func(t *testing.T) {
		_, err := config.NewSlackForTest("", "C0123456").Configure("")
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("configured", func(t *testing.T) {
		cfg := config.NewSlackForTest("xoxb-test", "C0123456")
		gt.Bool(t, cfg.IsConfigured()).True()
		notifier, err := cfg.Configure("https://caseflow.example.com")
		gt.NoError(t, err)
		gt.Value(t, notifier).NotNil()
	})
}
