package runner

import (
	"fmt"
	"unsafe"

	"github.com/notargets/countkernel/utils"
)

// AllocateArray allocates an uninitialized device array described by spec
func (kr *Runner) AllocateArray(spec ArraySpec) error {
	if spec.Name == "" {
		return fmt.Errorf("array spec has no name")
	}
	if _, exists := kr.arrayMetadata[spec.Name]; exists {
		return fmt.Errorf("array %s already allocated", spec.Name)
	}
	elementSize := SizeOfType(spec.DataType)
	if elementSize == 0 {
		return fmt.Errorf("array %s has unsupported data type %v", spec.Name, spec.DataType)
	}
	if spec.Length <= 0 {
		return fmt.Errorf("array %s has invalid length %d", spec.Name, spec.Length)
	}

	size := spec.Length * elementSize
	mem, err := kr.Context.CreateEmptyBuffer(spec.Access.flags(), size)
	if err = utils.Check("Failed to create output buffer", err); err != nil {
		return err
	}
	kr.PooledMemory[spec.Name] = mem
	kr.releases.push("buffer "+spec.Name, mem.Release)

	kr.arrayMetadata[spec.Name] = arrayInfo{spec: spec, size: size}
	return nil
}

// GetArrayLength returns the number of elements in an array
func (kr *Runner) GetArrayLength(name string) (int, error) {
	metadata, exists := kr.arrayMetadata[name]
	if !exists {
		return 0, fmt.Errorf("array %s not found", name)
	}
	return metadata.spec.Length, nil
}

// CopyArrayToHost performs a blocking read of a whole device array
func CopyArrayToHost[T any](kr *Runner, name string) ([]T, error) {
	metadata, exists := kr.arrayMetadata[name]
	if !exists {
		return nil, fmt.Errorf("array %s not found", name)
	}

	// Verify type matches
	var sample T
	requestedType := GetDataTypeFromSample(sample)
	if requestedType != metadata.spec.DataType {
		return nil, fmt.Errorf("type mismatch: array is %v, requested %v",
			metadata.spec.DataType, requestedType)
	}

	mem := kr.PooledMemory[name]
	if mem == nil {
		return nil, fmt.Errorf("memory for %s not found", name)
	}

	result := make([]T, metadata.spec.Length)
	event, err := kr.Queue.EnqueueReadBuffer(mem, true, 0, metadata.size,
		unsafe.Pointer(&result[0]), nil)
	if err = utils.Check("Failed to read buffer", err); err != nil {
		return nil, err
	}
	event.Release()
	return result, nil
}
