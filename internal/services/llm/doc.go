// Package llm wraps the OpenRouter chat completion API used as the semantic
// relevance oracle.
//
// The oracle is consulted only when algorithmic matching produces weak
// results, so the client is tuned for that shape of traffic: short plain-text
// responses, temperature zero, and bounded retries with exponential backoff
// for transient transport failures. Rate-limit responses honor the
// Retry-After header when the server supplies one.
//
// Callers own the decision of what to do with a failed completion; the client
// never fabricates a response.
package llm
