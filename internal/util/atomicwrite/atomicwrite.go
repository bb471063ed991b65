// Package atomicwrite provee un helper para escritura atómica de archivos.
package atomicwrite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// AtomicWriteFile escribe data a path de forma atómica.
// Pasos: write tmp → Sync → Close → Chmod → Rename.
//
// En Windows, os.Rename puede fallar si el destino existe o está bloqueado;
// en ese caso se intenta remove+rename, preservando el archivo viejo si
// el segundo rename también falla.
func AtomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	_ = os.Chmod(tmpPath, perm)

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename: %v (after remove: %v)", err, err2)
		}
	}

	return nil
}
