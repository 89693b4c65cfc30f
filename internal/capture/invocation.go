package capture

// Invocation groups the fragments of one combinator call site.
type Invocation struct {
	// BindingPattern is set only when the call's result is destructured.
	BindingPattern *Capture
	Ident          Capture
	Pattern        Capture
	NestedParsers  []Capture
	Input          Capture
}

func (inv *Invocation) SetBindingPattern(c Capture) {
	inv.BindingPattern = &c
}

func (inv *Invocation) SetIdent(c Capture) {
	inv.Ident = c
}

func (inv *Invocation) SetPattern(c Capture) {
	inv.Pattern = c
}

func (inv *Invocation) SetInput(c Capture) {
	inv.Input = c
}

// PushNestedParser records a parser passed as an argument to this call.
func (inv *Invocation) PushNestedParser(c Capture) {
	inv.NestedParsers = append(inv.NestedParsers, c)
}

// Clone returns a deep copy.
func (inv Invocation) Clone() Invocation {
	out := inv
	if inv.BindingPattern != nil {
		bp := *inv.BindingPattern
		out.BindingPattern = &bp
	}
	if inv.NestedParsers != nil {
		out.NestedParsers = append(make([]Capture, 0, len(inv.NestedParsers)), inv.NestedParsers...)
	}
	return out
}

func cloneInvocations(in []Invocation) []Invocation {
	if in == nil {
		return nil
	}
	out := make([]Invocation, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
