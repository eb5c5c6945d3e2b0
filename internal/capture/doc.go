// Package capture provides the frame sources and display sinks the scan
// loop runs against.
//
// Two pairs exist. FileSource and LogSink need nothing but the Go toolchain
// and back headless runs and tests. Camera and Window drive a real device
// and a desktop window through OpenCV; they are compiled only with the
// gocv build tag:
//
//	go build -tags gocv ./cmd/docscan
//
// Without the tag, OpenCamera and OpenWindow return ErrNoOpenCV.
package capture
