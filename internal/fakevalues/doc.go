// Package fakevalues resolves fake-data field keys such as "name.firstName"
// into values generated by a language model.
//
// A Resolver keeps one pool of unused candidates per key and language.
// A lookup on an empty pool builds a prompt from the key, sends it through
// an llm.Provider, normalizes the reply into candidates and fills the pool.
// Every lookup then draws one candidate at random and removes it, so a
// generated value is served at most once. When the pool runs dry the next
// lookup fetches again.
//
// Backend failures never surface as errors from Resolve: the caller gets
// ok == false and the key stays empty, so the following call retries.
// Only a malformed key is reported as an error.
package fakevalues
