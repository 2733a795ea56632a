// +build linux

package iouring

import (
	"io/ioutil"
	"os"
	"testing"
)

func tempFile(t testing.TB, prefix string) (*os.File, error) {
	f, err := ioutil.TempFile("", prefix)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() {
		f.Close()
		os.Remove(f.Name())
	})
	return f, nil
}
