//go:build windows

package dynlib

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func openLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procSetDllDirectoryW = modkernel32.NewProc("SetDllDirectoryW")
)

func platformSetSearchDirectory(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	r, _, callErr := procSetDllDirectoryW.Call(uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return callErr
	}
	return nil
}

func platformRestoreSearchDirectory() error {
	// A NULL argument restores the default DLL search order; an empty
	// string would instead remove the current directory from it.
	r, _, callErr := procSetDllDirectoryW.Call(0)
	if r == 0 {
		return callErr
	}
	return nil
}
