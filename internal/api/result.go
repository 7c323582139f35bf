package api

import "fmt"

// Status of a remote operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the envelope returned by every remote operation. Data is only
// meaningful on success; Message is only set on error. Success is derived
// from Status so the two can never disagree.
type Result[T any] struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Successful reports whether the operation succeeded.
func (r Result[T]) Successful() bool {
	return r.Status == StatusSuccess
}

// Success builds a success result carrying data.
func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// Errorf builds an error result with a formatted message.
func Errorf[T any](format string, args ...any) Result[T] {
	return Result[T]{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}
