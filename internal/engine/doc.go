// Package engine implements the classification and risk-scoring rules behind
// the add-on's page checks:
//   - the lexical classifier deciding whether a content item is educational,
//   - the reputation evaluator mapping a lookup outcome to a risk score,
//   - the shortener matcher,
//   - the form risk analyzer.
//
// Every classifier is a pure function of its input and is safe for concurrent
// use. Feature toggles are passed in explicitly by the caller.
package engine
