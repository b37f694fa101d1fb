// Package topic provides dot-separated event topics and wildcard matching.
//
// Topics name what happened, most general segment first:
//
//	input.key
//	buffer.committed
//	config.reloaded
//
// Subscription patterns may use two wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// For example "buffer.*" matches buffer.committed but not buffer.a.b, and
// "**" matches every topic. Index stores patterns in a trie so a published
// topic finds its subscribers without testing every pattern.
package topic
