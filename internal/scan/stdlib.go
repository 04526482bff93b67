// SPDX-License-Identifier: MPL-2.0

package scan

import "strings"

// mayaProvided are modules Maya ships in its own interpreter; bundling them
// would be wrong even when a same-named local file exists on the roots.
var mayaProvided = map[string]struct{}{
	"maya":      {},
	"PySide2":   {},
	"PySide6":   {},
	"shiboken2": {},
	"shiboken6": {},
}

// stdlibModules is the set of CPython top-level standard-library module
// names relevant to DCC tooling. The original analyzer asked the running
// interpreter for sys.stdlib_module_names; here the set is static.
var stdlibModules = map[string]struct{}{
	"abc": {}, "argparse": {}, "array": {}, "ast": {}, "asyncio": {},
	"atexit": {}, "base64": {}, "binascii": {}, "bisect": {}, "builtins": {},
	"bz2": {}, "calendar": {}, "cmath": {}, "collections": {}, "configparser": {},
	"contextlib": {}, "copy": {}, "csv": {}, "ctypes": {}, "dataclasses": {},
	"datetime": {}, "decimal": {}, "difflib": {}, "dis": {}, "enum": {},
	"errno": {}, "faulthandler": {}, "fnmatch": {}, "fractions": {},
	"functools": {}, "gc": {}, "getpass": {}, "glob": {}, "gzip": {},
	"hashlib": {}, "heapq": {}, "hmac": {}, "html": {}, "http": {},
	"importlib": {}, "inspect": {}, "io": {}, "itertools": {}, "json": {},
	"keyword": {}, "linecache": {}, "locale": {}, "logging": {}, "lzma": {},
	"marshal": {}, "math": {}, "mimetypes": {}, "multiprocessing": {},
	"numbers": {}, "operator": {}, "os": {}, "pathlib": {}, "pickle": {},
	"platform": {}, "pprint": {}, "queue": {}, "random": {}, "re": {},
	"reprlib": {}, "secrets": {}, "select": {}, "selectors": {}, "shlex": {},
	"shutil": {}, "signal": {}, "site": {}, "socket": {}, "sqlite3": {},
	"ssl": {}, "stat": {}, "statistics": {}, "string": {}, "struct": {},
	"subprocess": {}, "sys": {}, "sysconfig": {}, "tempfile": {},
	"textwrap": {}, "threading": {}, "time": {}, "timeit": {}, "token": {},
	"tokenize": {}, "traceback": {}, "types": {}, "typing": {},
	"unicodedata": {}, "unittest": {}, "urllib": {}, "uuid": {},
	"warnings": {}, "weakref": {}, "webbrowser": {}, "xml": {},
	"zipfile": {}, "zlib": {}, "zoneinfo": {},
}

// isLocalModule reports whether a dotted module name should be followed by
// the scanner: not Maya-provided, not standard library.
func isLocalModule(module string) bool {
	if module == "" {
		return false
	}
	base := module
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	if _, ok := mayaProvided[base]; ok {
		return false
	}
	if _, ok := stdlibModules[base]; ok {
		return false
	}
	return true
}
