// sidecarfix: repairs capture dates on exported photo/video libraries from JSON sidecars.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// archiveSidecar relocates a consumed or orphaned sidecar under the
// backup root. With mirror set, the sidecar's directory relative to the
// tree root is recreated underneath; otherwise everything lands flat in
// the backup root. Returns the destination path.
//
// Move failures are for the caller to log and count; processing always
// continues.
func archiveSidecar(sidecarPath, root, backupRoot string, mirror bool) (string, error) {
	destDir := backupRoot
	if mirror {
		rel, err := filepath.Rel(root, filepath.Dir(sidecarPath))
		if err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			destDir = filepath.Join(backupRoot, rel)
		}
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	dest := collisionFreePath(filepath.Join(destDir, filepath.Base(sidecarPath)))
	if err := os.Rename(sidecarPath, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// collisionFreePath appends _1, _2, ... before the extension until the
// name is unused, so archiving never overwrites an earlier sidecar of
// the same name.
func collisionFreePath(dest string) string {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
