package sl_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestNew_LevelsByEnv(t *testing.T) {
	var buf bytes.Buffer

	sl.New("local", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	sl.New("dev", &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	sl.New("prod", &buf).Info("json", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"k":"v"`)
}
