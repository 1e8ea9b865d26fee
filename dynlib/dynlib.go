package dynlib

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/jmp75/rdotnet/errors"
)

const (
	stateLoaded int32 = iota + 1
	stateReleased
)

// Library owns one OS loader handle. It may be shared across goroutines
// for Resolve calls once loaded; Load and Release require external
// serialization or single ownership.
type Library struct {
	name   string
	handle uintptr
	state  atomic.Int32
}

var (
	searchMu  sync.Mutex
	searchDir string
)

// SetSearchDirectory configures where subsequent Load calls look for
// libraries by name before falling back to the system defaults. The
// mechanism is platform-specific (a process-scoped loader path variable on
// unix, SetDllDirectory on Windows); the observable contract is uniform.
func SetSearchDirectory(dir string) error {
	searchMu.Lock()
	defer searchMu.Unlock()
	if err := platformSetSearchDirectory(dir); err != nil {
		return err
	}
	searchDir = dir
	return nil
}

// RestoreDefaultSearchDirectory fully undoes a prior SetSearchDirectory,
// returning the platform loader to its pre-customization state.
func RestoreDefaultSearchDirectory() error {
	searchMu.Lock()
	defer searchMu.Unlock()
	if err := platformRestoreSearchDirectory(); err != nil {
		return err
	}
	searchDir = ""
	return nil
}

// Load opens the named shared library. The name may be a bare file name,
// resolved against the configured search directory and then the system
// defaults, or an explicit path.
func Load(name string) (*Library, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NameInvalid("library")
	}

	searchMu.Lock()
	dir := searchDir
	searchMu.Unlock()

	var handle uintptr
	var err error
	if dir != "" && !filepath.IsAbs(name) {
		handle, err = openLibrary(filepath.Join(dir, name))
	}
	if handle == 0 {
		handle, err = openLibrary(name)
	}
	if handle == 0 {
		return nil, errors.LibraryNotFound(name, err)
	}

	l := &Library{name: name, handle: handle}
	l.state.Store(stateLoaded)
	Logger().Debug("loaded library",
		zap.String("name", name),
		zap.Uintptr("handle", handle))
	return l, nil
}

// Name returns the name the library was loaded under.
func (l *Library) Name() string {
	return l.name
}

// Handle returns the opaque OS loader handle, or 0 after release.
func (l *Library) Handle() uintptr {
	if l.state.Load() != stateLoaded {
		return 0
	}
	return l.handle
}

// Resolve looks up a named entry point and returns its address. The caller
// reinterprets the address as a concrete function signature; that
// reinterpretation is inherently unchecked, so the expected signature must
// come from the library's documentation.
func (l *Library) Resolve(symbol string) (uintptr, error) {
	if strings.TrimSpace(symbol) == "" {
		return 0, errors.NameInvalid("entry point")
	}
	if l.state.Load() != stateLoaded {
		return 0, errors.AlreadyReleased(fmt.Sprintf("library %q", l.name))
	}
	addr, err := lookupSymbol(l.handle, symbol)
	if err != nil || addr == 0 {
		return 0, errors.EntryPointNotFound(l.name, symbol, err)
	}
	Logger().Debug("resolved entry point",
		zap.String("library", l.name),
		zap.String("symbol", symbol),
		zap.Uintptr("addr", addr))
	return addr, nil
}

// ResolveFunc resolves symbol and binds it to fnPtr, which must be a
// pointer to a function variable with the entry point's C signature.
func (l *Library) ResolveFunc(symbol string, fnPtr any) error {
	addr, err := l.Resolve(symbol)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fnPtr, addr)
	return nil
}

// Release unloads the library. The OS-level unload happens exactly once;
// further calls are no-ops, and further Resolve calls fail with
// already_released rather than touching a dead handle.
func (l *Library) Release() error {
	if !l.state.CompareAndSwap(stateLoaded, stateReleased) {
		return nil
	}
	err := closeLibrary(l.handle)
	Logger().Debug("released library",
		zap.String("name", l.name),
		zap.Error(err))
	return err
}

// FileName returns the platform file name for a library base name, e.g.
// "R" becomes libR.so, libR.dylib or R.dll.
func FileName(base string) string {
	switch runtime.GOOS {
	case "windows":
		return base + ".dll"
	case "darwin":
		return "lib" + base + ".dylib"
	default:
		return "lib" + base + ".so"
	}
}
