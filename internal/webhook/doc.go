// Package webhook implements the bot's HTTP callback endpoint with
// HMAC-SHA256 signature verification.
//
// # Security Model
//
// - HMAC-SHA256 signatures verified using crypto/subtle (constant-time comparison)
// - Signatures are base64-encoded digests, per the platform's X-Line-Signature scheme
// - Body size limits enforced to prevent DoS attacks
// - No signature details leaked in error responses
// - Request logging excludes payload content
//
// # Request Flow
//
//  1. HTTP POST arrives at the callback path
//  2. Body size checked (reject with 413 if too large)
//  3. Signature header extracted and verified against the channel secret
//     (reject with 400 before any decoding on mismatch)
//  4. Body decoded into the event envelope (reject with 400 if malformed)
//  5. Events processed in array order: classify, look up quote, compose, reply
//  6. 200 "OK" returned once all events are processed, regardless of
//     per-event delivery outcomes; any non-200 triggers platform-side retries
//
// # Error Responses
//
// - 400 Bad Request: invalid or missing signature, or malformed envelope
// - 413 Payload Too Large: body exceeds the size limit
package webhook
