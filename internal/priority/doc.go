// Package priority ranks unread mail by urgency. Each message gets a
// deterministic heuristic score and a model score; the two are blended with
// fixed weights into the final ranking key. The model is treated as
// unreliable: any generation or parse failure degrades to the heuristic
// score without failing the ranking request.
package priority
