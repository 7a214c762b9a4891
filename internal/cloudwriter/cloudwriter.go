// Package cloudwriter uploads finished analytics archives to object
// storage. Writers buffer locally and upload on Close, so a failed
// upload never leaves a half-written object.
package cloudwriter

// Writer is a write-only object stream.
type Writer interface {
	Write(data []byte) (int, error)
	Close() error
}

// Factory creates writers bound to a bucket and object path.
type Factory interface {
	NewWriter(bucket, objectPath string) (Writer, error)
}
