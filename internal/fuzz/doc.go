// Package fuzztests houses Go fuzz harnesses for the capture, replay and
// rendering paths. They guard against panics on arbitrary replay bytes and
// on fragment shapes a collaborator could plausibly hand over.
//
// Does not: generate corpora, write files, run the CLI.
package fuzztests
