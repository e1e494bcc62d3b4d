// Package fileutil locates prompt documents on disk.
//
// ResolvePromptPath turns a possibly relative prompt path into an absolute
// location by trying the working directory and then its parent.
// ScanPrompts walks a directory for prompt documents, skipping hidden and
// excluded directories, and returns sorted absolute paths.
package fileutil
