// Package view resolves display-ready queue state from the staged-change
// store.
//
// The formatter detects each queue's capacity mode, normalizes raw
// capacity values into canonical display strings, parses resource
// vectors, decides deletability, and assembles the effective hierarchy —
// grafting pending additions under their staged parents. Everything here
// is a pure function of current store state; nothing is cached or
// persisted, and malformed source values fall back to documented
// defaults rather than failing a render.
package view
