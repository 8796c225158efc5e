package exitcode

const (
	Success        = 0
	UsageError     = 1
	ReferenceError = 2
	InputError     = 3
	FilterError    = 4
	WriteError     = 5
)
