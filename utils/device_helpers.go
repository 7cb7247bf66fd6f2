package utils

import (
	"fmt"

	"github.com/jgillich/go-opencl/cl"
)

// SelectDevice returns the first platform and the first device of the
// requested type on it
func SelectDevice(deviceType cl.DeviceType) (*cl.Platform, *cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err = Check("Failed to get platform ID", err); err != nil {
		return nil, nil, err
	}
	if len(platforms) == 0 {
		return nil, nil, Check("Failed to get platform ID", ErrNoPlatform)
	}
	platform := platforms[0]

	devices, err := platform.GetDevices(deviceType)
	if err = Check("Failed to get device ID", err); err != nil {
		return nil, nil, err
	}
	if len(devices) == 0 {
		return nil, nil, Check("Failed to get device ID", ErrNoDevice)
	}
	return platform, devices[0], nil
}

// CreateTestDevice selects a device for testing, preferring GPUs
func CreateTestDevice() (*cl.Device, error) {
	// Try GPU first, then anything the first platform offers (CPU runtimes)
	deviceTypes := []cl.DeviceType{
		cl.DeviceTypeGPU,
		cl.DeviceTypeAll,
	}

	var lastErr error
	for _, dt := range deviceTypes {
		_, device, err := SelectDevice(dt)
		if err == nil {
			return device, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no OpenCL device available: %w", lastErr)
}
