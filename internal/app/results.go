package app

// Result is the uniform payload handed to the UI. Orchestrators map every
// internal error into Success=false with a displayable message; no error
// values cross this boundary outward.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Message: msg}
}

// failErr prefers the error's own message and falls back to a generic one.
func failErr[T any](err error, fallback string) Result[T] {
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result[T]{Success: false, Message: msg}
}
