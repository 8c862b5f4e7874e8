package processor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestNotifierFunc(t *testing.T) {
	var got string
	NotifierFunc(func(m string) { got = m }).Notify("x")
	assert.Equal(t, "x", got)
}
