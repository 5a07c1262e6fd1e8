// Package fsaccess provides the local-filesystem channels used by the save
// chain: a remembered folder (Directory), an interactive terminal "save
// as" prompt (TerminalPicker) and a download folder (DownloadDir).
package fsaccess
