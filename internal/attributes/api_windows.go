//go:build windows
// +build windows

package attributes

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Device control codes from winioctl.h.
const (
	fsctlSetCompression = 0x0009C040
	fsctlSetSparse      = 0x000900C4

	compressionFormatNone uint16 = 0
)

// win32API is the production fileAPI.
type win32API struct{}

func (win32API) GetAttributes(path string) (Flags, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, newAttrError(ErrorCategoryRead, path, "get_attributes", err)
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, newAttrError(ErrorCategoryRead, path, "get_attributes", err)
	}
	return Flags(attrs), nil
}

func (win32API) SetAttributes(path string, attrs Flags) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return newAttrError(ErrorCategoryWrite, path, "set_attributes", err)
	}
	if err := windows.SetFileAttributes(p, uint32(attrs)); err != nil {
		return newAttrError(ErrorCategoryWrite, path, "set_attributes", err)
	}
	return nil
}

func (w win32API) DisableCompression(path string) error {
	format := compressionFormatNone
	return w.control(path, "disable_compression", fsctlSetCompression,
		(*byte)(unsafe.Pointer(&format)), uint32(unsafe.Sizeof(format)))
}

func (w win32API) DisableSparse(path string) error {
	// FILE_SET_SPARSE_BUFFER is a single BOOLEAN.
	var setSparse byte
	return w.control(path, "disable_sparse", fsctlSetSparse, &setSparse, 1)
}

// control opens path for read/write and issues one DeviceIoControl request.
// The handle never outlives the call.
func (win32API) control(path, operation string, code uint32, in *byte, inSize uint32) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return newAttrError(ErrorCategoryWrite, path, operation, err)
	}

	handle, err := windows.CreateFile(
		p,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return newAttrError(ErrorCategoryWrite, path, "open_file", err)
	}
	defer windows.CloseHandle(handle)

	var bytesReturned uint32
	if err := windows.DeviceIoControl(handle, code, in, inSize, nil, 0, &bytesReturned, nil); err != nil {
		return newAttrError(ErrorCategoryWrite, path, operation, err)
	}
	return nil
}
