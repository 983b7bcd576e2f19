// Package panel wires a field registry to a host: it registers the display
// and save handlers with a Registrar, renders stored values through
// pkg/render, and applies the pkg/codec persistence policy to submitted
// payloads against a Store.
//
// Every collaborator (hook registrar, metadata store, eligibility gate, request
// payload, nonce issuer) is an interface injected at construction.
package panel
