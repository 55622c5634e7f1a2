// Package unsubscribe stops mail from a sender through an ordered strategy
// chain: a mailto or http candidate from the List-Unsubscribe header, a URL
// scraped from the message snippet, and finally a label-only marker. Each
// resolution inspects a single recent message from the sender; whenever one
// is found, the UNSUBSCRIBED label is left on it regardless of which strategy
// terminated the chain.
package unsubscribe
