// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import "fmt"

// Result is the status code every fallible native entry point returns.
// Zero is success, positive values are non-error statuses, negative
// values are errors.
type Result int32

// Native status codes.
const (
	Success    Result = 0
	NotReady   Result = 1
	Timeout    Result = 2
	EventSet   Result = 3
	EventReset Result = 4
	Incomplete Result = 5

	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
	ErrorFormatNotSupported   Result = -11
	ErrorFragmentedPool       Result = -12
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case NotReady:
		return "not ready"
	case Timeout:
		return "timeout"
	case EventSet:
		return "event set"
	case EventReset:
		return "event reset"
	case Incomplete:
		return "incomplete"
	case ErrorOutOfHostMemory:
		return "out of host memory"
	case ErrorOutOfDeviceMemory:
		return "out of device memory"
	case ErrorInitializationFailed:
		return "initialization failed"
	case ErrorDeviceLost:
		return "device lost"
	case ErrorMemoryMapFailed:
		return "memory map failed"
	case ErrorLayerNotPresent:
		return "layer not present"
	case ErrorExtensionNotPresent:
		return "extension not present"
	case ErrorFeatureNotPresent:
		return "feature not present"
	case ErrorIncompatibleDriver:
		return "incompatible driver"
	case ErrorTooManyObjects:
		return "too many objects"
	case ErrorFormatNotSupported:
		return "format not supported"
	case ErrorFragmentedPool:
		return "fragmented pool"
	}
	return fmt.Sprintf("unknown result (%d)", int32(r))
}

// Error converts a Result into an error, nil on Success. The binding
// never interprets a failure status beyond wrapping it; callers
// translate it into their own domain errors.
func Error(r Result) error {
	if r == Success {
		return nil
	}
	return ResultError{Result: r}
}

// ResultError carries the native status code of a failed call.
type ResultError struct {
	Result Result
}

func (e ResultError) Error() string {
	return fmt.Sprintf("vulkan error: %s (%d)", e.Result, int32(e.Result))
}
