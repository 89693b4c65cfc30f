package fuzztests

import (
	"combdiag/internal/capture"
	"combdiag/internal/demo"
	"combdiag/internal/diag"
	"combdiag/internal/replay"
)

const maxFuzzInput = 16 << 10

// replaySeeds encodes a few real failures of the demo parser.
func replaySeeds() [][]byte {
	var seeds [][]byte
	for _, input := range []string{"=1", "k:1", "key=", ""} {
		_, _, err := demo.ParseAssignment(input)
		e, ok := diag.FromError(err)
		if !ok {
			continue
		}
		data, err := replay.Marshal(e.SetMessage("seed"))
		if err != nil {
			continue
		}
		seeds = append(seeds, data)
	}
	return append(seeds, malformedSeeds()...)
}

// malformedSeeds encodes demo contexts whose columns break the capture
// contract; the decoder has to reject them.
func malformedSeeds() [][]byte {
	fc, err := demo.Context()
	if err != nil {
		return nil
	}
	corrupt := []func(inv *capture.Invocation){
		func(inv *capture.Invocation) { inv.Ident.EndColumn = capture.Some(0) },
		func(inv *capture.Invocation) { inv.Input.EndColumn = capture.None },
		func(inv *capture.Invocation) { inv.Pattern.StartColumn = capture.Some(1 << 30) },
	}
	var seeds [][]byte
	for _, c := range corrupt {
		bad := fc.Clone()
		c(&bad.ParserContexts[0])
		data, err := replay.Marshal(diag.Rebuild("seed", "=1", bad, demo.File))
		if err != nil {
			continue
		}
		seeds = append(seeds, data)
	}
	return seeds
}
