// Package cloudwriter uploads write-once objects to cloud storage. Writers
// buffer locally and push the whole object on Close.
package cloudwriter

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
