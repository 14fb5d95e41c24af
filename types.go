package captcha

// TaskID identifies a task created on a remote solving service. It is opaque
// to this library: the only things done with it are polling for the result
// and correlating errors and log lines with the task that produced them.
type TaskID string

func (id TaskID) String() string {
	return string(id)
}
