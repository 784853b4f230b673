package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/cli/config"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
)

func TestLoggerConfigure(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	t.Run("json output redacts client email", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "caseflow.log")
		closer, err := config.NewLoggerForTest("info", "json", path).Configure()
		gt.NoError(t, err)

		logging.Default().Info("case submitted", "client", model.ClientInfo{
			ClientName: "Acme Corporation",
			Email:      "contact@acme.com",
		})
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.Bool(t, strings.Contains(string(data), "Acme Corporation")).True()
		gt.Bool(t, strings.Contains(string(data), "contact@acme.com")).False()
	})

	t.Run("level filters records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "caseflow.log")
		closer, err := config.NewLoggerForTest("warn", "json", path).Configure()
		gt.NoError(t, err)

		logging.Default().Info("dropped")
		logging.Default().Warn("kept")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.Bool(t, strings.Contains(string(data), "dropped")).False()
		gt.Bool(t, strings.Contains(string(data), "kept")).True()
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "json", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}
