package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jgillich/go-opencl/cl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NilPassesThrough(t *testing.T) {
	assert.NoError(t, Check("Failed to create OpenCL context", nil))
}

func TestCheck_Formatting(t *testing.T) {
	testCases := []struct {
		name     string
		label    string
		err      error
		expected string
	}{
		{"raw status", "Failed to enqueue kernel", cl.ErrOther(-9999), "Failed to enqueue kernel (-9999)"},
		{"sentinel", "Failed to get device ID", cl.ErrDeviceNotFound, "Failed to get device ID (-1)"},
		{"wrapped sentinel", "Failed to create kernel",
			fmt.Errorf("lookup: %w", cl.ErrInvalidKernelName), "Failed to create kernel (-46)"},
		{"work item size", "Failed to enqueue kernel", cl.ErrInvalidWorkItemSize, "Failed to enqueue kernel (-55)"},
		{"invalid operation", "Failed to finish queue", cl.ErrInvalidOperation, "Failed to finish queue (-59)"},
		{"wait list status", "Failed to read buffer", cl.ErrExecStatusErrorForEventsInWaitList,
			"Failed to read buffer (-14)"},
		{"host pointer", "Failed to create output buffer", cl.ErrInvalidHostPtr, "Failed to create output buffer (-37)"},
		{"unknown", "Failed to create kernel", cl.ErrUnknown,
			"Failed to create kernel (" + cl.ErrUnknown.Error() + ")"},
		{"no status", "Failed to get platform ID", ErrNoPlatform,
			"Failed to get platform ID (no OpenCL platform found)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.label, tc.err)
			require.Error(t, err)
			assert.Equal(t, tc.expected, err.Error())
		})
	}
}

func TestCheck_Unwrap(t *testing.T) {
	err := Check("Failed to get device ID", ErrNoDevice)
	assert.True(t, errors.Is(err, ErrNoDevice))

	var clErr *CLError
	require.True(t, errors.As(err, &clErr))
	assert.Equal(t, "Failed to get device ID", clErr.Label)
}

func TestCode(t *testing.T) {
	code, ok := Code(cl.ErrOther(-1001))
	assert.True(t, ok)
	assert.Equal(t, -1001, code)

	code, ok = Code(Check("Failed to read buffer", cl.ErrInvalidMemObject))
	assert.True(t, ok)
	assert.Equal(t, -38, code)

	code, ok = Code(cl.ErrInvalidDevicePartitionCount)
	assert.True(t, ok)
	assert.Equal(t, -68, code)

	_, ok = Code(cl.ErrUnknown)
	assert.False(t, ok)

	_, ok = Code(errors.New("plain"))
	assert.False(t, ok)

	_, ok = Code(nil)
	assert.False(t, ok)
}

func TestSelectDevice_ReturnsLabelledErrors(t *testing.T) {
	_, device, err := SelectDevice(cl.DeviceTypeGPU)
	if err == nil {
		require.NotNil(t, device)
		return
	}
	var clErr *CLError
	require.True(t, errors.As(err, &clErr), "unexpected error type %T", err)
	assert.Contains(t, []string{"Failed to get platform ID", "Failed to get device ID"}, clErr.Label)
}
