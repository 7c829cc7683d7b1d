// Package domain holds the core value types of the snapshot pipeline and
// its error taxonomy. Types here have no behavior and no dependencies;
// adapters and the application layer both speak in these terms.
package domain
