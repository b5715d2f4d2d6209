// Package rlnc builds random linear network coding coders out of statically
// composed capability layers.
//
// Two stacks are published. GeneratorCoder draws uniformly random coefficient
// vectors; SymbolIDCoder additionally treats the packed coefficient vector as
// the symbol identifier sent next to every coded symbol:
//
//	f, err := rlnc.NewSymbolIDFactory[field.Binary8](64, 1400)
//	if err != nil {
//		return err
//	}
//	c, err := f.Build(32, 1400)
//	if err != nil {
//		return err
//	}
//	id := make([]byte, f.MaxSymbolIDSize())
//	coefficients, err := c.WriteID(id)
//
// Each stack has a factory, which allocates a new coder per Build, and a pool,
// which hands out recycled coders behind a stack.Handle. Coders from either
// behave the same.
//
// A coder is not safe for concurrent use. Factories and pools are.
package rlnc
