// Package cli is the interactive cakeinvoice terminal client.
//
// NewApp opens the local database, loads the sender profile and builds a
// fresh invoice from it. App.Run then starts a REPL over stdin in which the
// invoice is edited, previewed and exported:
//
//   - edit: edit, additem, addmenu, edititem, rmitem, tax, discount, status, notes, new
//   - catalog: menu, addproduct, rmproduct, importmenu, profile
//   - export: save, savedir, drive, upload, sheet, share, history
//   - assistant: ai (auto-fill from a pasted order)
//
// "save" runs the three-tier save chain (remembered folder, terminal "save
// as" prompt, download folder) and may append a ledger row afterwards.
package cli
