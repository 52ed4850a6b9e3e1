package constant

// Values of runtime.GOOS with platform-specific behavior (browser opener, player install hints).
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
