package requires

// builtinModules are the modules compiled into the CPython interpreter on
// Linux. They never correspond to an installable file and are ignored by
// default.
var builtinModules = []string{
	"_abc", "_ast", "_codecs", "_collections", "_functools", "_imp", "_io",
	"_locale", "_operator", "_signal", "_sre", "_stat", "_string", "_symtable",
	"_thread", "_tokenize", "_tracemalloc", "_typing", "_warnings", "_weakref",
	"atexit", "builtins", "errno", "faulthandler", "gc", "itertools", "marshal",
	"posix", "pwd", "sys", "time", "xxsubtype",
}

// DefaultIgnore returns the default ignore list: the interpreter's builtin
// modules.
func DefaultIgnore() Set {
	return NewSet(builtinModules...)
}
