// Package lsp is a Language Server Protocol front end for texspell.
//
// The server speaks JSON-RPC 2.0 over stdio with Content-Length framing and
// requests full document sync. Every open document is scanned on open and
// change, and its spelling problems are published as diagnostics with
// source "texspell" and the problem arguments in the diagnostic data.
//
// # Code actions
//
// A codeAction request returns the quick fixes for the problems touching the
// requested range, in the order the selector produced them:
//
//   - corrections and change-case carry a WorkspaceEdit the editor applies
//   - add-word, ignore-word and disable-checking carry a command
//
// Commands take the proposal ID as their only argument:
//
//	texspell.addWord          add the word to the personal dictionary
//	texspell.ignoreWord       ignore the word for this session
//	texspell.disableSpelling  turn spell checking off
//
// Only proposals from the latest codeAction request can be executed.
//
// # Positions
//
// Spelling problems use byte offsets while LSP counts characters in UTF-16
// code units. PositionConverter translates between the two.
//
// # Usage
//
//	srv := lsp.NewServer(processor, lsp.WithReload(store.Reload))
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package lsp
