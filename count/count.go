// Package count runs the count_kernel demonstration: one kernel launch over a
// fixed-size int32 buffer whose contents are printed to stdout.
package count

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/jgillich/go-opencl/cl"
	"github.com/notargets/countkernel/runner"
	"github.com/notargets/countkernel/utils"
)

const (
	DefaultCount      = 1000
	DefaultKernelFile = "count_kernel.cl"
	DefaultKernelName = "count_kernel"

	outputArray = "output"
)

// Config describes one run
type Config struct {
	Count      int
	KernelFile string
	KernelName string
	DeviceType cl.DeviceType
}

// DefaultConfig returns the fixed configuration of the demonstration
func DefaultConfig() Config {
	return Config{
		Count:      DefaultCount,
		KernelFile: DefaultKernelFile,
		KernelName: DefaultKernelName,
		DeviceType: cl.DeviceTypeGPU,
	}
}

// Run executes the compute run and returns the process exit status. Results
// go to stdout, diagnostics to stderr. Device handles acquired before a
// failure are released before Run returns.
func Run(cfg Config, stdout, stderr io.Writer) int {
	output, err := compute(cfg)
	if err != nil {
		var buildErr *runner.BuildError
		if errors.As(err, &buildErr) {
			fmt.Fprintf(stderr, "Error building program: %s\n", buildErr.Log)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	if err = WriteResults(stdout, output); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write results (%v)\n", err)
		return 1
	}
	return 0
}

func compute(cfg Config) ([]int32, error) {
	_, device, err := utils.SelectDevice(cfg.DeviceType)
	if err != nil {
		return nil, err
	}

	kr, err := runner.NewRunner(device)
	if err != nil {
		return nil, err
	}
	defer kr.Free()

	source, err := ReadKernelSource(cfg.KernelFile)
	if err != nil {
		return nil, err
	}

	if _, err = kr.BuildKernel(source, cfg.KernelName); err != nil {
		return nil, err
	}

	err = kr.AllocateArray(runner.ArraySpec{
		Name:     outputArray,
		Length:   cfg.Count,
		DataType: runner.INT32,
		Access:   runner.WriteOnly,
	})
	if err != nil {
		return nil, err
	}

	if err = kr.RunKernel(cfg.KernelName, cfg.Count, outputArray); err != nil {
		return nil, err
	}

	return runner.CopyArrayToHost[int32](kr, outputArray)
}

// ReadKernelSource returns the full text of the kernel source file
func ReadKernelSource(fileName string) (string, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		// The path is already in the message; keep only the OS reason
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return "", fmt.Errorf("Could not open kernel file %s (%w)", fileName, err)
	}
	return string(data), nil
}

// WriteResults prints values separated by single spaces, with a trailing
// space and newline after the last one
func WriteResults(w io.Writer, values []int32) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for _, v := range values {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, ' ')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}
