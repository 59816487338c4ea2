package logger

import "sync"

// named holds loggers registered per component, keyed by name.
var named sync.Map

// Register makes l the logger Get returns for name. A nil l removes it.
func Register(name string, l *Logger) {
	if l == nil {
		named.Delete(name)
		return
	}
	named.Store(name, l)
}

// Unregister removes a named logger.
func Unregister(name string) {
	named.Delete(name)
}

// Get returns the logger registered for name, or the global logger tagged
// with name as its component.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
