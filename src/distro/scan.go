package distro

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/djherbis/atime"
	"github.com/spf13/afero"
)

// DiskExtensions are the virtual disk extensions searched for last access,
// in priority order: the legacy .vhd is only tried when no .vhdx exists.
var DiskExtensions = []string{".vhdx", ".vhd"}

// Scanner derives on-disk attributes of a distribution's base path.
// The walk visits directory entries in lexical order, so "first match" is
// deterministic for a given tree.
type Scanner struct {
	Fs     afero.Fs
	Logger *log.Logger
	// AccessTime extracts the access timestamp from file metadata.
	AccessTime func(os.FileInfo) time.Time
}

// NewScanner returns a Scanner over the host filesystem.
func NewScanner(logger *log.Logger) *Scanner {
	return &Scanner{Fs: afero.NewOsFs(), Logger: logger, AccessTime: fileAccessTime}
}

func (s *Scanner) fs() afero.Fs {
	if s.Fs == nil {
		return afero.NewOsFs()
	}
	return s.Fs
}

func (s *Scanner) accessTime(fi os.FileInfo) time.Time {
	if s.AccessTime != nil {
		return s.AccessTime(fi)
	}
	return fileAccessTime(fi)
}

// fileAccessTime falls back to the modification time for filesystems that
// carry no OS metadata, such as in-memory ones.
func fileAccessTime(fi os.FileInfo) time.Time {
	if fi.Sys() == nil {
		return fi.ModTime()
	}
	return atime.Get(fi)
}

// baseDir reports whether path names an existing directory worth scanning.
func (s *Scanner) baseDir(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	ok, err := afero.IsDir(s.fs(), path)
	if err != nil || !ok {
		orDiscard(s.Logger).Debug("base path is not a directory", "path", path)
		return false
	}
	return true
}

// TotalBytes sums the sizes of all regular files under path. Entries that
// cannot be read are logged and left out of the total.
func (s *Scanner) TotalBytes(path string) int64 {
	if !s.baseDir(path) {
		return 0
	}
	logger := orDiscard(s.Logger)
	var total int64
	err := afero.Walk(s.fs(), path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("could not access file", "path", p, "err", err)
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		logger.Warn("disk usage scan stopped early", "path", path, "err", err)
	}
	return total
}

var errFound = errors.New("found")

// LastAccess returns the access time of the first virtual disk file found
// under path. ok is false when there is none.
func (s *Scanner) LastAccess(path string) (t time.Time, ok bool) {
	if !s.baseDir(path) {
		return time.Time{}, false
	}
	for _, ext := range DiskExtensions {
		if fi, found := s.firstWithExt(path, ext); found {
			return s.accessTime(fi), true
		}
	}
	return time.Time{}, false
}

func (s *Scanner) firstWithExt(root, ext string) (os.FileInfo, bool) {
	logger := orDiscard(s.Logger)
	var match os.FileInfo
	err := afero.Walk(s.fs(), root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("could not access file", "path", p, "err", err)
			return nil
		}
		if info.Mode().IsRegular() && strings.EqualFold(filepath.Ext(p), ext) {
			match = info
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		logger.Warn("virtual disk search stopped early", "path", root, "err", err)
	}
	return match, match != nil
}
