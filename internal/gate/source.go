package gate

import "os"

// Env is a read-only view of environment variables.
type Env interface {
	Lookup(key string) (string, bool)
}

// FileReader reads whole files by path.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// OSEnv reads the live process environment on every lookup.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment snapshot.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]

	return v, ok
}

// OSFiles reads from the local filesystem.
type OSFiles struct{}

func (OSFiles) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint: gosec
}
