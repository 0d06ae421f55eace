package sl_test

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := fmt.Errorf("storage.TogglePayment: %w", errors.New("connection refused"))
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("storage.TogglePayment: connection refused"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestOp(t *testing.T) {
	attr := sl.Op("handlers.room.toggle")
	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "handlers.room.toggle", attr.Value.String())
}
