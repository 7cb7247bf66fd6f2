package runner

import (
	"fmt"

	"github.com/notargets/countkernel/utils"
)

// RunKernel binds the named device arrays as the kernel's positional
// arguments, launches globalSize work items in one dimension and waits for
// the queue to drain. The local work-group size is left to the runtime.
func (kr *Runner) RunKernel(kernelName string, globalSize int, arrayNames ...string) error {
	kernel, exists := kr.Kernels[kernelName]
	if !exists {
		return fmt.Errorf("kernel %s not compiled - use BuildKernel first", kernelName)
	}
	if globalSize <= 0 {
		return fmt.Errorf("kernel %s: invalid global size %d", kernelName, globalSize)
	}

	// Build kernel arguments
	args := make([]interface{}, 0, len(arrayNames))
	for _, name := range arrayNames {
		mem, exists := kr.PooledMemory[name]
		if !exists {
			return fmt.Errorf("memory for %s not found", name)
		}
		args = append(args, mem)
	}
	if err := utils.Check("Failed to set kernel argument", kernel.SetArgs(args...)); err != nil {
		return err
	}

	event, err := kr.Queue.EnqueueNDRangeKernel(kernel, nil, []int{globalSize}, nil, nil)
	if err = utils.Check("Failed to enqueue kernel", err); err != nil {
		return err
	}
	defer event.Release()

	return utils.Check("Failed to finish queue", kr.Queue.Finish())
}
