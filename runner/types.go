package runner

import (
	"fmt"

	"github.com/jgillich/go-opencl/cl"
)

// DataType represents the element type of a device array
type DataType int

const (
	Float32 DataType = iota + 1
	Float64
	INT32
	INT64
)

func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float"
	case Float64:
		return "double"
	case INT32:
		return "int"
	case INT64:
		return "long"
	default:
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
}

// MemAccess is the device-side access mode of an array
type MemAccess int

const (
	ReadWrite MemAccess = iota
	ReadOnly
	WriteOnly
)

func (ma MemAccess) flags() cl.MemFlag {
	switch ma {
	case ReadOnly:
		return cl.MemReadOnly
	case WriteOnly:
		return cl.MemWriteOnly
	default:
		return cl.MemReadWrite
	}
}

// ArraySpec defines user requirements for array allocation
type ArraySpec struct {
	Name     string
	Length   int
	DataType DataType
	Access   MemAccess
}

// SizeOfType returns the size in bytes of a data type
func SizeOfType(dt DataType) int {
	switch dt {
	case Float32, INT32:
		return 4
	case Float64, INT64:
		return 8
	default:
		return 0
	}
}

// GetDataTypeFromSample returns the DataType based on a sample value
func GetDataTypeFromSample(sample interface{}) DataType {
	switch sample.(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return INT32
	case int64:
		return INT64
	default:
		return 0
	}
}
