package envvar

const (
	// ServingEnv is the environment variable used to determine the environment
	ServingEnv = "SERVING_ENV"

	// ServingExportsPath is the environment variable used to override the export base path
	ServingExportsPath = "SERVING_EXPORTS_PATH"
)
