package requires

import "fmt"

// DefaultPythonMajor is the interpreter major version used in requirement
// strings.
const DefaultPythonMajor = "3"

// Formatter renders a module name as a requirement string.
type Formatter func(name string) string

// RPMFormat renders names as "python<major>(name)".
func RPMFormat(major string) Formatter {
	if major == "" {
		major = DefaultPythonMajor
	}
	return func(name string) string {
		return fmt.Sprintf("python%s(%s)", major, name)
	}
}

// PipFormat renders names as they are, as pip requirement files list them.
func PipFormat(name string) string {
	return name
}
