//go:build linux

package fs

import (
	"io/fs"
	"syscall"
	"time"
)

// Linux exposes no birth time through os.Stat; the inode change time is the
// nearest stable equivalent.
func createdTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}
