package dashboard

// Exit codes returned by Run.
const (
	// ExitSuccess indicates successful completion.
	ExitSuccess = 0

	// ExitUserError indicates bad arguments or an unknown task.
	ExitUserError = 1

	// ExitConfigError indicates the dashboard could not be configured.
	ExitConfigError = 2

	// ExitBackendError indicates the API was unreachable or failed.
	ExitBackendError = 3
)
