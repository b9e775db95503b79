// Package dispatch processes decoded webhook events into delivered replies.
//
// The dispatcher takes one verified, decoded batch of events and works through
// it strictly in array order: classify the text, look up a quote when the
// command asks for one, compose the reply, deliver it through the reply
// gateway. Each delivery gets a uuid for log correlation.
//
// Failure contract:
//   - Non-text events are skipped, never errors
//   - A failed quote lookup becomes a user-visible "no data" reply
//   - A failed delivery is logged and recorded in the outcome; it never
//     aborts the rest of the batch and never reaches the HTTP layer
package dispatch
