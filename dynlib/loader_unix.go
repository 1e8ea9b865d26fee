//go:build darwin || freebsd || linux

package dynlib

import (
	"os"
	"runtime"

	"github.com/ebitengine/purego"
)

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

// loaderPathVar names the process-scoped search path variable the platform
// loader consults.
func loaderPathVar() string {
	if runtime.GOOS == "darwin" {
		return "DYLD_FALLBACK_LIBRARY_PATH"
	}
	return "LD_LIBRARY_PATH"
}

// saved remembers the variable's pre-customization state, including
// whether it was set at all, so restore is a true undo.
var saved struct {
	value    string
	present  bool
	captured bool
}

func platformSetSearchDirectory(dir string) error {
	key := loaderPathVar()
	if !saved.captured {
		saved.value, saved.present = os.LookupEnv(key)
		saved.captured = true
	}
	path := dir
	if saved.present && saved.value != "" {
		path = dir + string(os.PathListSeparator) + saved.value
	}
	return os.Setenv(key, path)
}

func platformRestoreSearchDirectory() error {
	if !saved.captured {
		return nil
	}
	key := loaderPathVar()
	saved.captured = false
	if saved.present {
		return os.Setenv(key, saved.value)
	}
	return os.Unsetenv(key)
}
