// Package lib groups modules that do not fit strictly into
// the request layers.
//
// It contains background job processing (using Redis/Asynq)
// and the email client (Resend).
package lib
