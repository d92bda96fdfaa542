// Package cli implements the interactive readtrack terminal client.
//
// The REPL offers a different command set per navigation state:
//
//	Logged out: help, register, login, exit
//	Logged in:  help, home, search, find, scan, details, library,
//	            status, profile, logout, exit
//
// search and scan are sub-modes that read one line per keystroke batch or
// per scanned barcode until ":q".
package cli
