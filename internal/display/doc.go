// Package display formats user-facing warnings for the pagegen CLI.
//
// Warnings are written in yellow when the destination is a terminal and as
// plain text otherwise:
//
//	display.WarnUnrecognizedKeys(path, []string{"pageclass"}).Display(os.Stdout)
package display
