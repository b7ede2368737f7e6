package dataset

import "fmt"

// ErrorCode identifies the kind of pipeline error.
type ErrorCode string

const (
	ErrorSampling        ErrorCode = "SAMPLING"
	ErrorAnnotationParse ErrorCode = "ANNOTATION_PARSE"
	ErrorPatchWrite      ErrorCode = "PATCH_WRITE"
)

// SamplingError reports a sample count that the pool cannot satisfy.
type SamplingError struct {
	Pool      string
	Requested int
	Available int
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("%s: cannot sample %d images from pool %q with %d available",
		ErrorSampling, e.Requested, e.Pool, e.Available)
}

// Code returns ErrorSampling.
func (e *SamplingError) Code() ErrorCode { return ErrorSampling }

// AnnotationParseError reports a malformed annotation file.
type AnnotationParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *AnnotationParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (caused by: %v)", ErrorAnnotationParse, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", ErrorAnnotationParse, e.Path, e.Message)
}

func (e *AnnotationParseError) Unwrap() error { return e.Cause }

// Code returns ErrorAnnotationParse.
func (e *AnnotationParseError) Code() ErrorCode { return ErrorAnnotationParse }

// PatchWriteError reports a patch that could not be cropped or written.
type PatchWriteError struct {
	Filename string
	Cause    error
}

func (e *PatchWriteError) Error() string {
	return fmt.Sprintf("%s: failed to save %q (caused by: %v)", ErrorPatchWrite, e.Filename, e.Cause)
}

func (e *PatchWriteError) Unwrap() error { return e.Cause }

// Code returns ErrorPatchWrite.
func (e *PatchWriteError) Code() ErrorCode { return ErrorPatchWrite }
