package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jgillich/go-opencl/cl"
	"github.com/notargets/countkernel/utils"
)

// arrayInfo stores information about allocated arrays
type arrayInfo struct {
	spec ArraySpec
	size int // bytes
}

// Runner owns the OpenCL context, command queue, programs, kernels and device
// memory of a run. Everything it acquires is released by Free.
type Runner struct {
	Device        *cl.Device
	Context       *cl.Context
	Queue         *cl.CommandQueue
	Programs      map[string]*cl.Program
	Kernels       map[string]*cl.Kernel
	PooledMemory  map[string]*cl.MemObject
	arrayMetadata map[string]arrayInfo
	releases      releaseStack
}

// BuildError reports a kernel that failed to compile, with the compiler log
type BuildError struct {
	Kernel string
	Log    string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build kernel %s: %s", e.Kernel, e.Log)
}

func (e *BuildError) Unwrap() error { return e.Err }

// NewRunner creates a context and an in-order command queue on device
func NewRunner(device *cl.Device) (*Runner, error) {
	if device == nil {
		panic("NewRunner requires a device")
	}

	kr := &Runner{
		Device:        device,
		Programs:      make(map[string]*cl.Program),
		Kernels:       make(map[string]*cl.Kernel),
		PooledMemory:  make(map[string]*cl.MemObject),
		arrayMetadata: make(map[string]arrayInfo),
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err = utils.Check("Failed to create OpenCL context", err); err != nil {
		return nil, err
	}
	kr.Context = context
	kr.releases.push("context", context.Release)

	// Default properties: in-order, no profiling
	queue, err := context.CreateCommandQueue(device, 0)
	if err = utils.Check("Failed to create command queue", err); err != nil {
		kr.Free()
		return nil, err
	}
	kr.Queue = queue
	kr.releases.push("queue", queue.Release)

	return kr, nil
}

// BuildKernel compiles kernelSource for the runner's device and extracts the
// entry point kernelName
func (kr *Runner) BuildKernel(kernelSource, kernelName string) (*cl.Kernel, error) {
	if _, exists := kr.Kernels[kernelName]; exists {
		return nil, fmt.Errorf("kernel %s already built", kernelName)
	}

	program, err := kr.Context.CreateProgramWithSource([]string{kernelSource})
	if err = utils.Check("Failed to create program with source", err); err != nil {
		return nil, err
	}
	kr.Programs[kernelName] = program
	kr.releases.push("program "+kernelName, program.Release)

	if err = program.BuildProgram([]*cl.Device{kr.Device}, ""); err != nil {
		var buildErr cl.BuildError
		if errors.As(err, &buildErr) {
			// The log length reported by the runtime includes the NUL terminator
			return nil, &BuildError{
				Kernel: kernelName,
				Log:    strings.TrimRight(string(buildErr), "\x00"),
				Err:    err,
			}
		}
		return nil, utils.Check("Failed to build program", err)
	}

	kernel, err := program.CreateKernel(kernelName)
	if err = utils.Check("Failed to create kernel", err); err != nil {
		return nil, err
	}
	kr.Kernels[kernelName] = kernel
	kr.releases.push("kernel "+kernelName, kernel.Release)

	return kernel, nil
}

// Free releases all resources, newest first. It is safe to call more than once.
func (kr *Runner) Free() {
	kr.releases.releaseAll()

	kr.Programs = make(map[string]*cl.Program)
	kr.Kernels = make(map[string]*cl.Kernel)
	kr.PooledMemory = make(map[string]*cl.MemObject)
	kr.arrayMetadata = make(map[string]arrayInfo)
	kr.Queue = nil
	kr.Context = nil
}
