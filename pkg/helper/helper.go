package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the name of the calling function without its import
// path, e.g. "userservice.(*UserService).RegisterUser".
func GetFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
