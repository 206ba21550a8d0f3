package pymod

import "strings"

// Detect finds the highest-priority prefix containing path and the top-level
// module or package name right below it.
//
//	Detect("/sys_path/pkg/mod1.py", []string{"/sys_path/", "/", ""})
//	// "/sys_path", "pkg", true
//	Detect("/sys_path/mod1.py", []string{"/sys_path"})
//	// "/sys_path", "mod1.py", true
func Detect(path string, prefixes []string) (prefix, module string, ok bool) {
	return detect(path, SortPrefixes(prefixes))
}

func detect(path string, sorted []string) (string, string, bool) {
	clean := strings.TrimRight(path, "/")
	for _, pref := range sorted {
		if !strings.HasPrefix(path, pref+"/") || pref == clean {
			continue
		}
		rest := strings.TrimPrefix(path, pref+"/")
		module, _, _ := strings.Cut(rest, "/")
		if module == "" {
			continue
		}
		return pref, module, true
	}
	return "", "", false
}
