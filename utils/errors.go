package utils

import (
	"errors"
	"fmt"

	"github.com/jgillich/go-opencl/cl"
)

var (
	ErrNoPlatform = errors.New("no OpenCL platform found")
	ErrNoDevice   = errors.New("no OpenCL device of the requested type found")
)

// clStatus maps the binding's sentinel errors back to their OpenCL status codes
var clStatus = map[error]int{
	cl.ErrDeviceNotFound:                     -1,
	cl.ErrDeviceNotAvailable:                 -2,
	cl.ErrCompilerNotAvailable:               -3,
	cl.ErrMemObjectAllocationFailure:         -4,
	cl.ErrOutOfResources:                     -5,
	cl.ErrOutOfHostMemory:                    -6,
	cl.ErrProfilingInfoNotAvailable:          -7,
	cl.ErrMemCopyOverlap:                     -8,
	cl.ErrImageFormatMismatch:                -9,
	cl.ErrImageFormatNotSupported:            -10,
	cl.ErrBuildProgramFailure:                -11,
	cl.ErrMapFailure:                         -12,
	cl.ErrMisalignedSubBufferOffset:          -13,
	cl.ErrExecStatusErrorForEventsInWaitList: -14,
	cl.ErrCompileProgramFailure:              -15,
	cl.ErrLinkerNotAvailable:                 -16,
	cl.ErrLinkProgramFailure:                 -17,
	cl.ErrDevicePartitionFailed:              -18,
	cl.ErrKernelArgInfoNotAvailable:          -19,
	cl.ErrInvalidValue:                       -30,
	cl.ErrInvalidDeviceType:                  -31,
	cl.ErrInvalidPlatform:                    -32,
	cl.ErrInvalidDevice:                      -33,
	cl.ErrInvalidContext:                     -34,
	cl.ErrInvalidQueueProperties:             -35,
	cl.ErrInvalidCommandQueue:                -36,
	cl.ErrInvalidHostPtr:                     -37,
	cl.ErrInvalidMemObject:                   -38,
	cl.ErrInvalidImageFormatDescriptor:       -39,
	cl.ErrInvalidImageSize:                   -40,
	cl.ErrInvalidSampler:                     -41,
	cl.ErrInvalidBinary:                      -42,
	cl.ErrInvalidBuildOptions:                -43,
	cl.ErrInvalidProgram:                     -44,
	cl.ErrInvalidProgramExecutable:           -45,
	cl.ErrInvalidKernelName:                  -46,
	cl.ErrInvalidKernelDefinition:            -47,
	cl.ErrInvalidKernel:                      -48,
	cl.ErrInvalidArgIndex:                    -49,
	cl.ErrInvalidArgValue:                    -50,
	cl.ErrInvalidArgSize:                     -51,
	cl.ErrInvalidKernelArgs:                  -52,
	cl.ErrInvalidWorkDimension:               -53,
	cl.ErrInvalidWorkGroupSize:               -54,
	cl.ErrInvalidWorkItemSize:                -55,
	cl.ErrInvalidGlobalOffset:                -56,
	cl.ErrInvalidEventWaitList:               -57,
	cl.ErrInvalidEvent:                       -58,
	cl.ErrInvalidOperation:                   -59,
	cl.ErrInvalidGlObject:                    -60,
	cl.ErrInvalidBufferSize:                  -61,
	cl.ErrInvalidMipLevel:                    -62,
	cl.ErrInvalidGlobalWorkSize:              -63,
	cl.ErrInvalidProperty:                    -64,
	cl.ErrInvalidImageDescriptor:             -65,
	cl.ErrInvalidCompilerOptions:             -66,
	cl.ErrInvalidLinkerOptions:               -67,
	cl.ErrInvalidDevicePartitionCount:        -68,
}

// CLError is a failed OpenCL call together with the fixed label of the step
// that issued it
type CLError struct {
	Label string
	Err   error
}

// Error renders "<label> (<code>)". Errors without an OpenCL status, such as
// cl.ErrUnknown (a call that reported success but returned nothing usable) or
// an empty enumeration, render their text in place of the code.
func (e *CLError) Error() string {
	if code, ok := Code(e.Err); ok {
		return fmt.Sprintf("%s (%d)", e.Label, code)
	}
	return fmt.Sprintf("%s (%v)", e.Label, e.Err)
}

func (e *CLError) Unwrap() error { return e.Err }

// Check labels a non-nil error from an OpenCL call. It returns nil for nil.
func Check(label string, err error) error {
	if err == nil {
		return nil
	}
	return &CLError{Label: label, Err: err}
}

// Code recovers the raw OpenCL status code carried by err, if any
func Code(err error) (int, bool) {
	var other cl.ErrOther
	if errors.As(err, &other) {
		return int(other), true
	}
	for err != nil {
		if code, ok := clStatus[err]; ok {
			return code, true
		}
		err = errors.Unwrap(err)
	}
	return 0, false
}
