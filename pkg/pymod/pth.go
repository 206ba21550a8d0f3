package pymod

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/altlinux/py3dephell/pkg/errors"
)

// PthSuffix is the suffix of path-extension files.
const PthSuffix = ".pth"

// pthSkipRE matches .pth lines that do not name a directory:
// comments, executable import lines and blank lines.
var pthSkipRE = regexp.MustCompile(`^#|^import\s|^$`)

// ReadPth returns the directories listed in a path-extension file, joined
// with the directory of the file itself.
func ReadPth(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file or directory: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var dirs []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if pthSkipRE.MatchString(line) {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return dirs, nil
}

// DetectPth collects the extra search prefixes contributed by path-extension
// files. Each path is either a .pth file or a directory whose .pth children
// are read; anything else is skipped. Unreadable files are logged and ignored.
func DetectPth(paths []string, logger *log.Logger) []string {
	logger = loggerOr(logger)
	var prefixes []string

	read := func(p string) {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		logger.Debug("detected .pth file", "path", abs)
		dirs, err := ReadPth(abs)
		if err != nil {
			logger.Warn("skipping .pth file", "path", abs, "err", err)
			return
		}
		prefixes = append(prefixes, dirs...)
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			logger.Debug("path does not exist, skip it", "path", p)
			continue
		}
		switch {
		case filepath.Ext(p) == PthSuffix:
			read(p)
		case info.IsDir():
			entries, err := os.ReadDir(p)
			if err != nil {
				logger.Warn("cannot list directory", "path", p, "err", err)
				continue
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if filepath.Ext(e.Name()) == PthSuffix {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)
			for _, name := range names {
				read(filepath.Join(p, name))
			}
		default:
			logger.Debug("path is not a directory or .pth file, skip it", "path", p)
		}
	}

	return prefixes
}
